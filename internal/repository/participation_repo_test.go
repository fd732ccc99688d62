package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-records-api/internal/models"
)

func TestParticipationRepositoryStoresZeroValue(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipationRepository(db, newTestWriter(db))
	ctx := context.Background()

	student := seedStudent(t, db, "S-1")
	course := seedCourse(t, db, "ART110", "2024B")
	seedEnrollment(t, db, student.ID, course.ID)

	single := models.ParticipationRecord{StudentID: student.ID, CourseID: course.ID, EventDate: day(t, "2024-05-10"), Metric: "question", Value: 0}
	require.NoError(t, repo.Create(ctx, &single))

	result, err := repo.CreateBatch(ctx, []models.ParticipationRecord{
		{StudentID: student.ID, CourseID: course.ID, EventDate: day(t, "2024-05-11"), Metric: "question", Value: 0},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Inserted)

	var values []float64
	require.NoError(t, db.Model(&models.ParticipationRecord{}).Order("id").Pluck("value", &values).Error)
	require.Equal(t, []float64{0, 0}, values)
}

func TestParticipationRepositoryUpdateToZero(t *testing.T) {
	db := setupTestDB(t)
	repo := NewParticipationRepository(db, newTestWriter(db))
	ctx := context.Background()

	student := seedStudent(t, db, "S-1")
	course := seedCourse(t, db, "ART110", "2024B")
	seedEnrollment(t, db, student.ID, course.ID)

	record := models.ParticipationRecord{StudentID: student.ID, CourseID: course.ID, EventDate: day(t, "2024-05-10"), Metric: "question", Value: 3}
	require.NoError(t, repo.Create(ctx, &record))

	updated, err := repo.Update(ctx, record.ID, map[string]interface{}{"value": 0.0})
	require.NoError(t, err)
	require.Zero(t, updated.Value)
}
