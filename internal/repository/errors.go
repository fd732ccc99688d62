package repository

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// Store error taxonomy. Repositories translate driver failures into these values so
// callers never inspect driver-specific codes.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrForeignKey = errors.New("foreign key violation")
	ErrEmptyBatch = errors.New("batch must contain at least one record")
)

// translateError maps gorm's translated driver errors onto the repository taxonomy,
// keeping the original error in the chain for logging.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrDuplicate), errors.Is(err, ErrForeignKey):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isSQLiteRestrict(err):
		return fmt.Errorf("%w: %w", ErrForeignKey, err)
	default:
		return err
	}
}

// isSQLiteRestrict reports an ON DELETE RESTRICT violation. SQLite raises those
// as SQLITE_CONSTRAINT_TRIGGER, which the gorm sqlite dialector leaves untranslated.
func isSQLiteRestrict(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintTrigger
}
