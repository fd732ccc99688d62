package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// EnrollmentFilter narrows enrollment listings; set fields are AND-combined.
type EnrollmentFilter struct {
	StudentID *uint
	CourseID  *uint
}

// EnrollmentRepository exposes persistence helpers for enrollments.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	List(ctx context.Context, filter EnrollmentFilter) ([]models.EnrollmentRow, error)
	GetByID(ctx context.Context, id uint) (models.EnrollmentRow, error)
	Delete(ctx context.Context, id uint) error
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository constructs an enrollment repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(enrollment).Error)
}

func (r *enrollmentRepository) List(ctx context.Context, filter EnrollmentFilter) ([]models.EnrollmentRow, error) {
	query := r.joined(ctx)
	if filter.StudentID != nil {
		query = query.Where("e.student_id = ?", *filter.StudentID)
	}
	if filter.CourseID != nil {
		query = query.Where("e.course_id = ?", *filter.CourseID)
	}

	var rows []models.EnrollmentRow
	if err := query.Order("e.id DESC").Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id uint) (models.EnrollmentRow, error) {
	var rows []models.EnrollmentRow
	if err := r.joined(ctx).Where("e.id = ?", id).Limit(1).Scan(&rows).Error; err != nil {
		return models.EnrollmentRow{}, translateError(err)
	}
	if len(rows) == 0 {
		return models.EnrollmentRow{}, ErrNotFound
	}
	return rows[0], nil
}

// Delete removes an enrollment unless attendance, participation or score rows exist
// for its pair, in which case ErrForeignKey is returned. The enrollment row is
// locked first so an in-flight bulk write holding it finishes before the count.
func (r *enrollmentRepository) Delete(ctx context.Context, id uint) error {
	return translateError(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&enrollment).Error; err != nil {
			return err
		}

		for _, model := range []interface{}{&models.AttendanceRecord{}, &models.ParticipationRecord{}, &models.ScoreRecord{}} {
			found, err := exists(tx.Model(model).Where("student_id = ? AND course_id = ?", enrollment.StudentID, enrollment.CourseID))
			if err != nil {
				return err
			}
			if found {
				return ErrForeignKey
			}
		}

		return tx.Delete(&models.Enrollment{}, enrollment.ID).Error
	}))
}

func (r *enrollmentRepository) joined(ctx context.Context) *gorm.DB {
	return withStudentAndCourse(r.db.WithContext(ctx), "enrollments", "e").
		Select("e.id, e.student_id, e.course_id, " + studentCourseColumns)
}
