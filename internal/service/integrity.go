package service

import (
	"errors"

	"github.com/noah-isme/edu-records-api/internal/repository"
)

// integrityError maps a failed integrity check onto the matching sentinel.
func integrityError(result repository.IntegrityResult) error {
	switch result.Status {
	case repository.IntegrityStudentNotFound:
		return ErrStudentNotFound
	case repository.IntegrityCourseNotFound:
		return ErrCourseNotFound
	case repository.IntegrityNotEnrolled:
		return ErrNotEnrolled
	default:
		return nil
	}
}

// recordInsertError classifies a failed single-record insert.
func recordInsertError(err error, duplicate *Error) error {
	switch {
	case duplicate != nil && errors.Is(err, repository.ErrDuplicate):
		return wrapError(duplicate, err)
	case errors.Is(err, repository.ErrForeignKey):
		return wrapError(ErrInvalidReference, err)
	default:
		return err
	}
}
