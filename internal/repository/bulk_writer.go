package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConflictPolicy decides what happens when an insert inside a batch hits a
// uniqueness conflict.
type ConflictPolicy int

const (
	// AbortOnConflict rolls the whole batch back on any insert failure.
	AbortOnConflict ConflictPolicy = iota
	// SkipDuplicates drops records that collide with an existing row and keeps going.
	// Any other failure still rolls the batch back.
	SkipDuplicates
)

// EnrolledRecord is a child record that may only exist for an enrolled pair.
type EnrolledRecord interface {
	Pair() (studentID uint, courseID uint)
}

// BulkResult reports the outcome of a committed batch.
type BulkResult struct {
	Inserted int
	Skipped  int
	Total    int
}

// BulkEnrollmentError identifies the first record of a batch whose pair has no
// enrollment. Nothing from the batch was written.
type BulkEnrollmentError struct {
	Index     int
	StudentID uint
	CourseID  uint
	Result    IntegrityResult
}

func (e *BulkEnrollmentError) Error() string {
	return fmt.Sprintf("Student %d is not enrolled in course %d", e.StudentID, e.CourseID)
}

// BulkWriter commits batches of enrolled records as one unit.
type BulkWriter struct {
	db        *gorm.DB
	integrity IntegrityChecker
	txOptions *sql.TxOptions
	timeout   time.Duration
}

// NewBulkWriter constructs a writer. txOptions may be nil to use the store default;
// a zero timeout leaves the caller's context as the only bound.
func NewBulkWriter(db *gorm.DB, integrity IntegrityChecker, txOptions *sql.TxOptions, timeout time.Duration) *BulkWriter {
	return &BulkWriter{
		db:        db,
		integrity: integrity,
		txOptions: txOptions,
		timeout:   timeout,
	}
}

// WriteBatch verifies every record's enrollment in input order, then inserts the
// records in input order, all inside one transaction. The first unenrolled pair
// aborts the batch with a *BulkEnrollmentError. On success the stored records carry
// their assigned ids.
func WriteBatch[T EnrolledRecord](ctx context.Context, w *BulkWriter, records []T, policy ConflictPolicy) (BulkResult, error) {
	if len(records) == 0 {
		return BulkResult{}, ErrEmptyBatch
	}

	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	result := BulkResult{Total: len(records)}
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := verifyEnrollments(ctx, w.integrity, tx, records); err != nil {
			return err
		}

		for i := range records {
			inserted, err := insertRecord(tx, &records[i], policy)
			if err != nil {
				return err
			}
			if inserted {
				result.Inserted++
			} else {
				result.Skipped++
			}
		}

		return nil
	}, w.txOptions)
	if err != nil {
		return BulkResult{Total: len(records)}, err
	}

	return result, nil
}

func verifyEnrollments[T EnrolledRecord](ctx context.Context, integrity IntegrityChecker, tx *gorm.DB, records []T) error {
	verified := make(map[[2]uint]struct{}, len(records))
	for index, record := range records {
		studentID, courseID := record.Pair()
		key := [2]uint{studentID, courseID}
		if _, ok := verified[key]; ok {
			continue
		}

		check, err := integrity.CheckEnrollment(ctx, tx, studentID, courseID, true)
		if err != nil {
			return err
		}
		if !check.OK() {
			return &BulkEnrollmentError{Index: index, StudentID: studentID, CourseID: courseID, Result: check}
		}
		verified[key] = struct{}{}
	}

	return nil
}

// insertRecord reports false when a duplicate was skipped under SkipDuplicates.
// Skips run inside a savepoint so the surrounding transaction stays usable on
// stores that abort a transaction after a failed statement.
func insertRecord(tx *gorm.DB, record interface{}, policy ConflictPolicy) (bool, error) {
	if policy != SkipDuplicates {
		if err := tx.Omit(clause.Associations).Create(record).Error; err != nil {
			return false, translateError(err)
		}
		return true, nil
	}

	err := tx.Transaction(func(savepoint *gorm.DB) error {
		return savepoint.Omit(clause.Associations).Create(record).Error
	})
	if err == nil {
		return true, nil
	}

	translated := translateError(err)
	if errors.Is(translated, ErrDuplicate) {
		return false, nil
	}
	return false, translated
}
