package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// ScoreRepository exposes persistence helpers for assessment scores.
type ScoreRepository interface {
	Create(ctx context.Context, record *models.ScoreRecord) error
	List(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRow, error)
	GetByID(ctx context.Context, id uint) (models.ScoreRecord, error)
	Update(ctx context.Context, id uint, apply func(*models.ScoreRecord) error) (models.ScoreRecord, error)
	Delete(ctx context.Context, id uint) error
}

type scoreRepository struct {
	db *gorm.DB
}

// NewScoreRepository constructs a score repository.
func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Create(ctx context.Context, record *models.ScoreRecord) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

func (r *scoreRepository) List(ctx context.Context, filter models.ScoreFilter) ([]models.ScoreRow, error) {
	query := withStudentAndCourse(r.db.WithContext(ctx), "scores", "sc").
		Select("sc.id, sc.student_id, sc.course_id, sc.assessment_name, sc.assessment_date, sc.score, sc.max_score, " + studentCourseColumns)

	if filter.StudentID != nil {
		query = query.Where("sc.student_id = ?", *filter.StudentID)
	}
	if filter.CourseID != nil {
		query = query.Where("sc.course_id = ?", *filter.CourseID)
	}

	var rows []models.ScoreRow
	if err := query.Order("sc.assessment_date DESC, sc.id DESC").Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *scoreRepository) GetByID(ctx context.Context, id uint) (models.ScoreRecord, error) {
	var record models.ScoreRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return models.ScoreRecord{}, translateError(err)
	}
	return record, nil
}

// Update loads the score under a row lock, lets apply mutate it, and saves the
// result. An error from apply aborts without writing.
func (r *scoreRepository) Update(ctx context.Context, id uint, apply func(*models.ScoreRecord) error) (models.ScoreRecord, error) {
	var record models.ScoreRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		if err := apply(&record); err != nil {
			return err
		}
		return tx.Model(&record).Select("assessment_name", "assessment_date", "score", "max_score", "updated_at").Updates(&record).Error
	})
	if err != nil {
		return models.ScoreRecord{}, translateError(err)
	}
	return record, nil
}

func (r *scoreRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ScoreRecord{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
