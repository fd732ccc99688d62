package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/models"
)

func TestAttendanceRepositoryListOrderAndFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttendanceRepository(db, newTestWriter(db))
	ctx := context.Background()

	ada := seedStudent(t, db, "S-1")
	bob := seedStudent(t, db, "S-2")
	course := seedCourse(t, db, "BIO101", "2024A")
	seedEnrollment(t, db, ada.ID, course.ID)
	seedEnrollment(t, db, bob.ID, course.ID)

	records := []models.AttendanceRecord{
		{StudentID: ada.ID, CourseID: course.ID, AttendDate: day(t, "2024-03-01"), Status: models.AttendanceStatusPresent},
		{StudentID: bob.ID, CourseID: course.ID, AttendDate: day(t, "2024-03-02"), Status: models.AttendanceStatusLate},
		{StudentID: ada.ID, CourseID: course.ID, AttendDate: day(t, "2024-03-02"), Status: models.AttendanceStatusAbsent},
		{StudentID: ada.ID, CourseID: course.ID, AttendDate: day(t, "2024-02-20"), Status: models.AttendanceStatusPresent},
	}
	for i := range records {
		require.NoError(t, repo.Create(ctx, &records[i]))
	}

	rows, err := repo.List(ctx, models.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	require.Equal(t, records[2].ID, rows[0].ID, "same day sorts by id descending")
	require.Equal(t, records[1].ID, rows[1].ID)
	require.Equal(t, records[0].ID, rows[2].ID)
	require.Equal(t, records[3].ID, rows[3].ID)
	require.Equal(t, "BIO101", rows[0].CourseCode)
	require.Equal(t, "Student S-1", rows[0].FullName)

	again, err := repo.List(ctx, models.AttendanceFilter{})
	require.NoError(t, err)
	require.Equal(t, rows, again)

	from := day(t, "2024-03-01")
	to := day(t, "2024-03-01")
	rows, err = repo.List(ctx, models.AttendanceFilter{StudentID: &ada.ID, From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, records[0].ID, rows[0].ID)

	rows, err = repo.List(ctx, models.AttendanceFilter{CourseID: &course.ID, Status: models.AttendanceStatusPresent})
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestAttendanceRepositoryCreateRejectsDuplicateDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttendanceRepository(db, newTestWriter(db))
	ctx := context.Background()

	student := seedStudent(t, db, "S-1")
	course := seedCourse(t, db, "BIO101", "2024A")
	seedEnrollment(t, db, student.ID, course.ID)

	first := models.AttendanceRecord{StudentID: student.ID, CourseID: course.ID, AttendDate: day(t, "2024-03-01"), Status: models.AttendanceStatusPresent}
	require.NoError(t, repo.Create(ctx, &first))

	second := models.AttendanceRecord{StudentID: student.ID, CourseID: course.ID, AttendDate: day(t, "2024-03-01"), Status: models.AttendanceStatusLate}
	require.ErrorIs(t, repo.Create(ctx, &second), ErrDuplicate)

	updated, err := repo.UpdateStatus(ctx, first.ID, models.AttendanceStatusExcused)
	require.NoError(t, err)
	require.Equal(t, models.AttendanceStatusExcused, updated.Status)

	_, err = repo.UpdateStatus(ctx, 999, models.AttendanceStatusLate)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, first.ID))
	require.ErrorIs(t, repo.Delete(ctx, first.ID), ErrNotFound)
}
