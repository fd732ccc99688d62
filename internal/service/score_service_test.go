package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/dto"
)

func TestScoreServiceCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student, course := f.enrolledPair(t, "S-1")

	created, err := f.scores.Create(ctx, dto.ScoreCreateRequest{StudentID: student.ID, CourseID: course.ID, AssessmentName: "Midterm", AssessmentDate: "2024-04-01", Score: floatPtr(87.5)})
	require.NoError(t, err)
	require.Equal(t, 100.0, created.MaxScore)

	_, err = f.scores.Create(ctx, dto.ScoreCreateRequest{StudentID: student.ID, CourseID: course.ID, AssessmentName: "Quiz", AssessmentDate: "2024-04-02", Score: floatPtr(11), MaxScore: floatPtr(10)})
	require.ErrorIs(t, err, ErrScoreExceedsMax)
	require.Equal(t, "score cannot be greater than max_score", err.Error())

	_, err = f.scores.Create(ctx, dto.ScoreCreateRequest{StudentID: student.ID, CourseID: course.ID, AssessmentName: "Midterm", AssessmentDate: "2024-04-03", Score: floatPtr(1)})
	require.ErrorIs(t, err, ErrScoreDuplicate)

	items, err := f.scores.List(ctx, ScoreFilter{StudentID: &student.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestScoreServiceUpdateChecksMergedBound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	student, course := f.enrolledPair(t, "S-1")
	created, err := f.scores.Create(ctx, dto.ScoreCreateRequest{StudentID: student.ID, CourseID: course.ID, AssessmentName: "Quiz", AssessmentDate: "2024-04-01", Score: floatPtr(8), MaxScore: floatPtr(10)})
	require.NoError(t, err)

	_, err = f.scores.Update(ctx, created.ID, dto.ScoreUpdateRequest{MaxScore: floatPtr(5)})
	require.ErrorIs(t, err, ErrScoreExceedsMax)

	stored, err := f.scores.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, 10.0, stored.MaxScore)

	updated, err := f.scores.Update(ctx, created.ID, dto.ScoreUpdateRequest{Score: floatPtr(4), MaxScore: floatPtr(5)})
	require.NoError(t, err)
	require.Equal(t, 4.0, updated.Score)
	require.Equal(t, 5.0, updated.MaxScore)

	_, err = f.scores.Update(ctx, 999, dto.ScoreUpdateRequest{Score: floatPtr(1)})
	require.ErrorIs(t, err, ErrScoreNotFound)
}
