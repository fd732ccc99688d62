package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAttendanceRate(t *testing.T) {
	require.Equal(t, 75.0, AttendanceRate(2, 1, 4))
	require.Equal(t, 66.67, AttendanceRate(1, 1, 3))
	require.Zero(t, AttendanceRate(0, 0, 0))

	row := RosterRow{Present: 2, Late: 1, Absent: 1}
	require.Equal(t, int64(4), row.Total())
	require.Equal(t, 75.0, AttendanceRate(row.Present, row.Late, row.Total()))
}

func TestScorePercentage(t *testing.T) {
	value, ok := ScorePercentage(35, 40)
	require.True(t, ok)
	require.Equal(t, 87.5, value)

	_, ok = ScorePercentage(10, 0)
	require.False(t, ok)
}
