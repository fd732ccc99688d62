package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// CourseRepository exposes persistence helpers for courses.
type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	List(ctx context.Context, term string) ([]models.Course, error)
	GetByID(ctx context.Context, id uint) (models.Course, error)
	GetByCodeAndTerm(ctx context.Context, code, term string) (models.Course, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Course, error)
	Delete(ctx context.Context, id uint) error
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository constructs a course repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return translateError(r.db.WithContext(ctx).Create(course).Error)
}

func (r *courseRepository) List(ctx context.Context, term string) ([]models.Course, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})
	if term != "" {
		query = query.Where("term = ?", term)
	}

	var courses []models.Course
	if err := query.Order("id DESC").Find(&courses).Error; err != nil {
		return nil, translateError(err)
	}
	return courses, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&course).Error; err != nil {
		return models.Course{}, translateError(err)
	}
	return course, nil
}

func (r *courseRepository) GetByCodeAndTerm(ctx context.Context, code, term string) (models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).Where("code = ? AND term = ?", code, term).First(&course).Error; err != nil {
		return models.Course{}, translateError(err)
	}
	return course, nil
}

func (r *courseRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&course).Error; err != nil {
			return err
		}
		if err := tx.Model(&course).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&course).Error
	})
	if err != nil {
		return models.Course{}, translateError(err)
	}
	return course, nil
}

// Delete removes a course. Enrollments or records referencing it block the delete
// with ErrForeignKey.
func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	return deleteUnreferenced(ctx, r.db, &models.Course{}, id, "course_id")
}
