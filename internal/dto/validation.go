package dto

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// DateLayout is the calendar date format accepted and produced by the API.
const DateLayout = "2006-01-02"

// Bulk batch bounds.
const (
	MaxAttendanceBatch    = 500
	MaxParticipationBatch = 1000
)

// NewValidator returns a validator with the record-specific tags registered:
// isodate (YYYY-MM-DD calendar date) and attendance_status.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		return models.AttendanceStatus(fl.Field().String()).Valid()
	})
	return validate
}

// ParseDate parses a YYYY-MM-DD string into a UTC calendar date.
func ParseDate(value string) (datatypes.Date, error) {
	parsed, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(parsed), nil
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(date datatypes.Date) string {
	return time.Time(date).UTC().Format(DateLayout)
}
