package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/models"
)

func seedScore(t *testing.T, repo ScoreRepository, studentID, courseID uint, name string) models.ScoreRecord {
	t.Helper()
	record := models.ScoreRecord{
		StudentID:      studentID,
		CourseID:       courseID,
		AssessmentName: name,
		AssessmentDate: day(t, "2024-04-01"),
		Score:          7,
		MaxScore:       10,
	}
	require.NoError(t, repo.Create(context.Background(), &record))
	return record
}

func TestScoreRepositoryUpdateAppliesChanges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScoreRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "S-1")
	course := seedCourse(t, db, "CHEM101", "2024A")
	seedEnrollment(t, db, student.ID, course.ID)
	record := seedScore(t, repo, student.ID, course.ID, "Midterm")

	updated, err := repo.Update(ctx, record.ID, func(score *models.ScoreRecord) error {
		score.Score = 9
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 9.0, updated.Score)

	stored, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 9.0, stored.Score)
	require.Equal(t, 10.0, stored.MaxScore)
}

func TestScoreRepositoryUpdateAbortsOnApplyError(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScoreRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "S-1")
	course := seedCourse(t, db, "CHEM101", "2024A")
	seedEnrollment(t, db, student.ID, course.ID)
	record := seedScore(t, repo, student.ID, course.ID, "Midterm")

	errTooHigh := errors.New("too high")
	_, err := repo.Update(ctx, record.ID, func(score *models.ScoreRecord) error {
		score.Score = 50
		return errTooHigh
	})
	require.ErrorIs(t, err, errTooHigh)

	stored, err := repo.GetByID(ctx, record.ID)
	require.NoError(t, err)
	require.Equal(t, 7.0, stored.Score)

	_, err = repo.Update(ctx, 999, func(*models.ScoreRecord) error { return nil })
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScoreRepositoryAssessmentNameUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewScoreRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "S-1")
	course := seedCourse(t, db, "CHEM101", "2024A")
	seedEnrollment(t, db, student.ID, course.ID)
	seedScore(t, repo, student.ID, course.ID, "Midterm")
	final := seedScore(t, repo, student.ID, course.ID, "Final")

	duplicate := models.ScoreRecord{StudentID: student.ID, CourseID: course.ID, AssessmentName: "Midterm", AssessmentDate: day(t, "2024-05-01"), Score: 1, MaxScore: 10}
	require.ErrorIs(t, repo.Create(ctx, &duplicate), ErrDuplicate)

	_, err := repo.Update(ctx, final.ID, func(score *models.ScoreRecord) error {
		score.AssessmentName = "Midterm"
		return nil
	})
	require.ErrorIs(t, err, ErrDuplicate)

	rows, err := repo.List(ctx, models.ScoreFilter{StudentID: &student.ID})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, final.ID, rows[0].ID)
}
