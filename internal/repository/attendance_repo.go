package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// AttendanceRepository exposes persistence helpers for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, record *models.AttendanceRecord) error
	CreateBatch(ctx context.Context, records []models.AttendanceRecord) (BulkResult, error)
	List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRow, error)
	GetByID(ctx context.Context, id uint) (models.AttendanceRecord, error)
	UpdateStatus(ctx context.Context, id uint, status models.AttendanceStatus) (models.AttendanceRecord, error)
	Delete(ctx context.Context, id uint) error
}

type attendanceRepository struct {
	db     *gorm.DB
	writer *BulkWriter
}

// NewAttendanceRepository constructs an attendance repository backed by the bulk writer.
func NewAttendanceRepository(db *gorm.DB, writer *BulkWriter) AttendanceRepository {
	return &attendanceRepository{db: db, writer: writer}
}

func (r *attendanceRepository) Create(ctx context.Context, record *models.AttendanceRecord) error {
	return translateError(r.db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

// CreateBatch stores a batch atomically. A record repeating an existing
// (student, course, date) is skipped; anything else aborts the batch.
func (r *attendanceRepository) CreateBatch(ctx context.Context, records []models.AttendanceRecord) (BulkResult, error) {
	return WriteBatch(ctx, r.writer, records, SkipDuplicates)
}

func (r *attendanceRepository) List(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRow, error) {
	query := withStudentAndCourse(r.db.WithContext(ctx), "attendance", "a").
		Select("a.id, a.student_id, a.course_id, a.attend_date, a.status, " + studentCourseColumns)

	if filter.StudentID != nil {
		query = query.Where("a.student_id = ?", *filter.StudentID)
	}
	if filter.CourseID != nil {
		query = query.Where("a.course_id = ?", *filter.CourseID)
	}
	if filter.Status != "" {
		query = query.Where("a.status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("a.attend_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("a.attend_date <= ?", *filter.To)
	}

	var rows []models.AttendanceRow
	if err := query.Order("a.attend_date DESC, a.id DESC").Scan(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id uint) (models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		return models.AttendanceRecord{}, translateError(err)
	}
	return record, nil
}

func (r *attendanceRepository) UpdateStatus(ctx context.Context, id uint, status models.AttendanceStatus) (models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
			return err
		}
		if err := tx.Model(&record).Update("status", status).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&record).Error
	})
	if err != nil {
		return models.AttendanceRecord{}, translateError(err)
	}
	return record, nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.AttendanceRecord{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
