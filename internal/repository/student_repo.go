package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// StudentRepository exposes persistence helpers for students.
type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	List(ctx context.Context) ([]models.Student, error)
	GetByID(ctx context.Context, id uint) (models.Student, error)
	GetByCode(ctx context.Context, code string) (models.Student, error)
	Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error)
	Delete(ctx context.Context, id uint) error
}

type studentRepository struct {
	db *gorm.DB
}

// NewStudentRepository constructs a student repository.
func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	return translateError(r.db.WithContext(ctx).Create(student).Error)
}

func (r *studentRepository) List(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	if err := r.db.WithContext(ctx).Order("id DESC").Find(&students).Error; err != nil {
		return nil, translateError(err)
	}
	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		return models.Student{}, translateError(err)
	}
	return student, nil
}

func (r *studentRepository) GetByCode(ctx context.Context, code string) (models.Student, error) {
	var student models.Student
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&student).Error; err != nil {
		return models.Student{}, translateError(err)
	}
	return student, nil
}

func (r *studentRepository) Update(ctx context.Context, id uint, updates map[string]interface{}) (models.Student, error) {
	var student models.Student
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&student).Error; err != nil {
			return err
		}
		if err := tx.Model(&student).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).First(&student).Error
	})
	if err != nil {
		return models.Student{}, translateError(err)
	}
	return student, nil
}

// Delete removes a student. Enrollments or records referencing it block the delete
// with ErrForeignKey.
func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	return deleteUnreferenced(ctx, r.db, &models.Student{}, id, "student_id")
}
