package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/models"
)

func TestStudentRepositoryDeleteBlockedByEnrollment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "S-1")
	course := seedCourse(t, db, "ENG101", "2024A")
	seedEnrollment(t, db, student.ID, course.ID)

	err := repo.Delete(ctx, student.ID)
	require.ErrorIs(t, err, ErrForeignKey)
	require.Equal(t, int64(1), countRows(t, db, &models.Student{}))
	require.Equal(t, int64(1), countRows(t, db, &models.Enrollment{}))
}

func TestStudentRepositoryDeleteBlockedByRecordsAfterUnenrolling(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	student := seedStudent(t, db, "S-1")
	course := seedCourse(t, db, "ENG101", "2024A")
	enrollment := seedEnrollment(t, db, student.ID, course.ID)
	require.NoError(t, db.Create(&models.ScoreRecord{
		StudentID: student.ID, CourseID: course.ID, AssessmentName: "Quiz", AssessmentDate: day(t, "2024-03-01"), Score: 5, MaxScore: 10,
	}).Error)
	require.NoError(t, db.Delete(&models.Enrollment{}, enrollment.ID).Error)

	require.ErrorIs(t, repo.Delete(ctx, student.ID), ErrForeignKey)
	require.Equal(t, int64(1), countRows(t, db, &models.Student{}))
}

func TestTranslateErrorMapsSQLiteRestrict(t *testing.T) {
	db := setupTestDB(t)

	student := seedStudent(t, db, "S-1")
	course := seedCourse(t, db, "ENG101", "2024A")
	seedEnrollment(t, db, student.ID, course.ID)

	err := translateError(db.Delete(&models.Student{}, student.ID).Error)
	require.ErrorIs(t, err, ErrForeignKey)
	require.Equal(t, int64(1), countRows(t, db, &models.Student{}))
}

func TestStudentRepositoryDeleteRemovesOnlyTarget(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	target := seedStudent(t, db, "S-1")
	other := seedStudent(t, db, "S-2")

	require.NoError(t, repo.Delete(ctx, target.ID))
	require.Equal(t, int64(1), countRows(t, db, &models.Student{}))

	_, err := repo.GetByID(ctx, other.ID)
	require.NoError(t, err)

	require.ErrorIs(t, repo.Delete(ctx, target.ID), ErrNotFound)
}

func TestStudentRepositoryCodeIsUnique(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Student{Code: "S-1", FullName: "Ada"}))
	err := repo.Create(ctx, &models.Student{Code: "S-1", FullName: "Grace"})
	require.ErrorIs(t, err, ErrDuplicate)

	second := models.Student{Code: "S-2", FullName: "Grace"}
	require.NoError(t, repo.Create(ctx, &second))
	_, err = repo.Update(ctx, second.ID, map[string]interface{}{"code": "S-1"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestStudentRepositoryListNewestFirstAndLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	seedStudent(t, db, "S-1")
	seedStudent(t, db, "S-2")

	students, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	require.Equal(t, "S-2", students[0].Code)

	found, err := repo.GetByCode(ctx, "S-1")
	require.NoError(t, err)
	require.Equal(t, "Student S-1", found.FullName)

	_, err = repo.GetByCode(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	updated, err := repo.Update(ctx, found.ID, map[string]interface{}{"full_name": "Ada Lovelace"})
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", updated.FullName)

	_, err = repo.Update(ctx, 999, map[string]interface{}{"full_name": "Nobody"})
	require.ErrorIs(t, err, ErrNotFound)
}
