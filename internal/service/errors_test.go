package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/repository"
)

func TestWrappedErrorMatchesSentinelAndCause(t *testing.T) {
	cause := fmt.Errorf("%w: unique constraint", repository.ErrDuplicate)
	err := wrapError(ErrStudentCodeTaken, cause)

	require.ErrorIs(t, err, ErrStudentCodeTaken)
	require.ErrorIs(t, err, repository.ErrDuplicate)
	require.False(t, errors.Is(err, ErrCourseExists))
	require.Equal(t, ErrStudentCodeTaken.Message, err.Error())

	kind, ok := KindOf(fmt.Errorf("handler: %w", err))
	require.True(t, ok)
	require.Equal(t, KindConflict, kind)

	_, ok = KindOf(errors.New("boom"))
	require.False(t, ok)
}

func TestInvalidInputNamesNestedField(t *testing.T) {
	validate := dto.NewValidator()
	err := validate.Struct(dto.AttendanceBulkRequest{Records: []dto.AttendanceCreateRequest{
		{StudentID: 1, CourseID: 1, AttendDate: "2024-03-01", Status: "present"},
		{StudentID: 1, CourseID: 1, AttendDate: "03/01/2024", Status: "present"},
	}})
	require.Error(t, err)

	mapped := invalidInput(err)
	kind, ok := KindOf(mapped)
	require.True(t, ok)
	require.Equal(t, KindInvalid, kind)
	require.Equal(t, "records[1].attend_date must be a date in YYYY-MM-DD format", mapped.Error())
}

func TestCleanTextStripsMarkup(t *testing.T) {
	require.Equal(t, "Ada & Grace", cleanText("  <b>Ada</b> &amp; Grace "))

	_, err := cleanRequired("<script></script>")
	require.ErrorIs(t, err, ErrInvalidText)
}
