package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// IntegrityStatus names the outcome of a referential integrity check.
type IntegrityStatus string

const (
	IntegrityOK              IntegrityStatus = "ok"
	IntegrityStudentNotFound IntegrityStatus = "student_not_found"
	IntegrityCourseNotFound  IntegrityStatus = "course_not_found"
	IntegrityNotEnrolled     IntegrityStatus = "not_enrolled"
)

// IntegrityClass groups failed checks the way callers report them.
type IntegrityClass string

const (
	IntegrityClassNone                IntegrityClass = ""
	IntegrityClassNotFound            IntegrityClass = "not_found"
	IntegrityClassInvalidRelationship IntegrityClass = "invalid_relationship"
)

// IntegrityResult is the structured outcome of a check.
type IntegrityResult struct {
	Status  IntegrityStatus
	Message string
}

// OK reports whether the referenced pair may receive records.
func (r IntegrityResult) OK() bool {
	return r.Status == IntegrityOK
}

// Class returns the failure classification, empty when the check passed.
func (r IntegrityResult) Class() IntegrityClass {
	switch r.Status {
	case IntegrityStudentNotFound, IntegrityCourseNotFound:
		return IntegrityClassNotFound
	case IntegrityNotEnrolled:
		return IntegrityClassInvalidRelationship
	default:
		return IntegrityClassNone
	}
}

var (
	integrityPassed          = IntegrityResult{Status: IntegrityOK}
	integrityStudentNotFound = IntegrityResult{Status: IntegrityStudentNotFound, Message: "Student not found"}
	integrityCourseNotFound  = IntegrityResult{Status: IntegrityCourseNotFound, Message: "Course not found"}
	integrityNotEnrolled     = IntegrityResult{Status: IntegrityNotEnrolled, Message: "Student is not enrolled in this course"}
)

// IntegrityChecker confirms a (student, course) pair may hold attendance,
// participation or score records. A nil db runs against the checker's own handle;
// pass a transaction to read inside it. Returned errors are store failures only.
type IntegrityChecker interface {
	Check(ctx context.Context, db *gorm.DB, studentID, courseID uint) (IntegrityResult, error)
	CheckEnrollment(ctx context.Context, db *gorm.DB, studentID, courseID uint, lock bool) (IntegrityResult, error)
}

type integrityChecker struct {
	db *gorm.DB
}

// NewIntegrityChecker constructs the referential integrity checker.
func NewIntegrityChecker(db *gorm.DB) IntegrityChecker {
	return &integrityChecker{db: db}
}

// Check verifies student, then course, then enrollment, and reports the first failure.
func (c *integrityChecker) Check(ctx context.Context, db *gorm.DB, studentID, courseID uint) (IntegrityResult, error) {
	session := c.session(ctx, db)

	found, err := exists(session.Model(&models.Student{}).Where("id = ?", studentID))
	if err != nil {
		return IntegrityResult{}, err
	}
	if !found {
		return integrityStudentNotFound, nil
	}

	found, err = exists(session.Model(&models.Course{}).Where("id = ?", courseID))
	if err != nil {
		return IntegrityResult{}, err
	}
	if !found {
		return integrityCourseNotFound, nil
	}

	return c.CheckEnrollment(ctx, db, studentID, courseID, false)
}

// CheckEnrollment looks only for the enrollment row. With lock set the row is read
// FOR SHARE so a concurrent delete waits for the surrounding transaction; SQLite
// drops the clause and relies on its database-level write lock.
func (c *integrityChecker) CheckEnrollment(ctx context.Context, db *gorm.DB, studentID, courseID uint, lock bool) (IntegrityResult, error) {
	query := c.session(ctx, db).Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID)
	if lock {
		query = query.Clauses(clause.Locking{Strength: "SHARE"})
	}

	found, err := exists(query)
	if err != nil {
		return IntegrityResult{}, err
	}
	if !found {
		return integrityNotEnrolled, nil
	}

	return integrityPassed, nil
}

func (c *integrityChecker) session(ctx context.Context, db *gorm.DB) *gorm.DB {
	if db == nil {
		db = c.db
	}
	return db.WithContext(ctx)
}

func exists(query *gorm.DB) (bool, error) {
	var ids []uint
	if err := query.Limit(1).Pluck("id", &ids).Error; err != nil {
		return false, translateError(err)
	}
	return len(ids) > 0, nil
}

// dependents lists the tables holding student_id and course_id references.
var dependents = []interface{}{
	&models.Enrollment{},
	&models.AttendanceRecord{},
	&models.ParticipationRecord{},
	&models.ScoreRecord{},
}

// deleteUnreferenced removes row (a pointer to an empty model) by id unless a
// dependent table still references it through column. The row is locked first
// so a concurrent insert that checked it either commits before the count or
// fails on the foreign key afterwards.
func deleteUnreferenced(ctx context.Context, db *gorm.DB, row interface{}, id uint, column string) error {
	return translateError(db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(row).Error; err != nil {
			return err
		}

		for _, model := range dependents {
			found, err := exists(tx.Model(model).Where(column+" = ?", id))
			if err != nil {
				return err
			}
			if found {
				return ErrForeignKey
			}
		}

		return tx.Delete(row).Error
	}))
}
