package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// ParticipationRepository exposes persistence helpers for participation events.
type ParticipationRepository interface {
	Create(ctx context.Context, record *models.ParticipationRecord) error
	CreateBatch(ctx context.Context, records []models.ParticipationRecord) (BulkResult, error)
	List(ctx context.Context, filter models.ParticipationFilter) ([]models.ParticipationRow, error)
	GetByID(ctx context.Context, id uint) (models.ParticipationRecord, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.ParticipationRecord, error)
	Delete(ctx context.Context, id uint) error
}

type participationRepository struct {
	db     *gorm.DB
	writer *BulkWriter
}

// NewParticipationRepository constructs a participation repository backed by the bulk writer.
func NewParticipationRepository(db *gorm.DB, writer *BulkWriter) ParticipationRepository {
	return &participationRepository{db: db, writer: writer}
}

func (r *participationRepository) Create(ctx context.Context, record *models.ParticipationRecord) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

// CreateBatch stores a batch atomically. Participation has no uniqueness rule, so
// identical records are all stored and any insert failure aborts the batch.
func (r *participationRepository) CreateBatch(ctx context.Context, records []models.ParticipationRecord) (BulkResult, error) {
	return WriteBatch(ctx, r.writer, records, AbortOnConflict)
}

func (r *participationRepository) List(ctx context.Context, filter models.ParticipationFilter) ([]models.ParticipationRow, error) {
	query := withStudentAndCourse(r.db.WithContext(ctx), "participation", "p").
		Select("p.id, p.student_id, p.course_id, p.event_date, p.metric, p.value, " + studentCourseColumns)

	if filter.StudentID != nil {
		query = query.Where("p.student_id = ?", *filter.StudentID)
	}
	if filter.CourseID != nil {
		query = query.Where("p.course_id = ?", *filter.CourseID)
	}
	if filter.Metric != "" {
		query = query.Where("p.metric = ?", filter.Metric)
	}
	if filter.From != nil {
		query = query.Where("p.event_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("p.event_date <= ?", *filter.To)
	}

	var rows []models.ParticipationRow
	if err := query.Order("p.event_date DESC, p.id DESC").Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *participationRepository) GetByID(ctx context.Context, id uint) (models.ParticipationRecord, error) {
	var record models.ParticipationRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return models.ParticipationRecord{}, translateError(err)
	}
	return record, nil
}

func (r *participationRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.ParticipationRecord, error) {
	var record models.ParticipationRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		if err := tx.Model(&record).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&record).Error
	})
	if err != nil {
		return models.ParticipationRecord{}, translateError(err)
	}
	return record, nil
}

func (r *participationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ParticipationRecord{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
