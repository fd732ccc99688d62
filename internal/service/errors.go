package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorKind classifies a service failure for transport mapping.
type ErrorKind int

const (
	// KindInvalid marks malformed input.
	KindInvalid ErrorKind = iota + 1
	// KindNotFound marks a missing referenced or addressed entity.
	KindNotFound
	// KindRelationship marks a reference between entities that is not allowed.
	KindRelationship
	// KindConflict marks a uniqueness or dependency conflict in the store.
	KindConflict
)

// Error is a classified service failure. Sentinels below are compared with
// errors.Is; wrapped copies keep the store cause for logging.
type Error struct {
	Kind    ErrorKind
	Message string
	base    *Error
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the underlying store or validation error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches the sentinel this error was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t == e || (e.base != nil && t == e.base)
}

func newError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(base *Error, cause error) error {
	return &Error{Kind: base.Kind, Message: base.Message, base: base, cause: cause}
}

// KindOf returns the classification of err, if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var serviceErr *Error
	if errors.As(err, &serviceErr) {
		return serviceErr.Kind, true
	}
	return 0, false
}

var (
	ErrStudentNotFound       = newError(KindNotFound, "Student not found")
	ErrCourseNotFound        = newError(KindNotFound, "Course not found")
	ErrEnrollmentNotFound    = newError(KindNotFound, "Enrollment not found")
	ErrAttendanceNotFound    = newError(KindNotFound, "Attendance record not found")
	ErrParticipationNotFound = newError(KindNotFound, "Participation record not found")
	ErrScoreNotFound         = newError(KindNotFound, "Score not found")

	ErrNotEnrolled      = newError(KindRelationship, "Student is not enrolled in this course")
	ErrInvalidReference = newError(KindRelationship, "Invalid student_id or course_id")

	ErrStudentCodeTaken     = newError(KindConflict, "Student code already exists")
	ErrCourseExists         = newError(KindConflict, "Course with this code already exists for the term")
	ErrAlreadyEnrolled      = newError(KindConflict, "Student is already enrolled in this course")
	ErrAttendanceDuplicate  = newError(KindConflict, "Attendance already recorded for this student, course and date")
	ErrScoreDuplicate       = newError(KindConflict, "Score already recorded for this assessment")
	ErrStudentReferenced    = newError(KindConflict, "Student has related records and cannot be deleted")
	ErrCourseReferenced     = newError(KindConflict, "Course has related records and cannot be deleted")
	ErrEnrollmentReferenced = newError(KindConflict, "Enrollment has attendance, participation or score records and cannot be deleted")

	ErrScoreExceedsMax  = newError(KindInvalid, "score cannot be greater than max_score")
	ErrNoFieldsToUpdate = newError(KindInvalid, "Provide at least one field to update")
	ErrInvalidText      = newError(KindInvalid, "Text fields must contain more than markup")
	ErrInvalidDateRange = newError(KindInvalid, "from must not be after to")
)

// invalidInput converts validator output into a KindInvalid error naming the
// first offending field.
func invalidInput(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return &Error{Kind: KindInvalid, Message: "Invalid request payload", cause: err}
	}

	first := fieldErrors[0]
	field := first.Namespace()
	if idx := strings.Index(field, "."); idx >= 0 {
		field = field[idx+1:]
	}

	var message string
	switch first.Tag() {
	case "required":
		message = fmt.Sprintf("%s is required", field)
	case "isodate":
		message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "attendance_status":
		message = fmt.Sprintf("%s must be one of present, absent, late, excused", field)
	case "min", "max", "gte", "gt":
		message = fmt.Sprintf("%s must satisfy %s=%s", field, first.Tag(), first.Param())
	default:
		message = fmt.Sprintf("%s is invalid", field)
	}

	return &Error{Kind: KindInvalid, Message: message, cause: err}
}
