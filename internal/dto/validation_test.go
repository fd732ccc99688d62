package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestValidatorRejectsImpossibleDates(t *testing.T) {
	validate := NewValidator()

	err := validate.Struct(AttendanceCreateRequest{StudentID: 1, CourseID: 1, AttendDate: "2024-02-30", Status: "present"})
	require.Error(t, err)

	var fieldErrors validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrors)
	require.Equal(t, "attend_date", fieldErrors[0].Field())
	require.Equal(t, "isodate", fieldErrors[0].Tag())

	require.NoError(t, validate.Struct(AttendanceCreateRequest{StudentID: 1, CourseID: 1, AttendDate: "2024-02-29", Status: "late"}))
}

func TestValidatorRejectsUnknownStatus(t *testing.T) {
	validate := NewValidator()

	err := validate.Struct(AttendanceCreateRequest{StudentID: 1, CourseID: 1, AttendDate: "2024-03-01", Status: "sleeping"})
	require.Error(t, err)
}

func TestValidatorBulkBounds(t *testing.T) {
	validate := NewValidator()

	require.Error(t, validate.Struct(AttendanceBulkRequest{}))

	records := make([]AttendanceCreateRequest, MaxAttendanceBatch+1)
	for i := range records {
		records[i] = AttendanceCreateRequest{StudentID: 1, CourseID: 1, AttendDate: "2024-03-01", Status: "present"}
	}
	require.Error(t, validate.Struct(AttendanceBulkRequest{Records: records}))
	require.NoError(t, validate.Struct(AttendanceBulkRequest{Records: records[:MaxAttendanceBatch]}))

	bad := []AttendanceCreateRequest{records[0], {StudentID: 1, CourseID: 1, AttendDate: "bad", Status: "present"}}
	require.Error(t, validate.Struct(AttendanceBulkRequest{Records: bad}), "every record is validated")
}

func TestValidatorScoreRequiresValue(t *testing.T) {
	validate := NewValidator()

	require.Error(t, validate.Struct(ScoreCreateRequest{StudentID: 1, CourseID: 1, AssessmentName: "Quiz", AssessmentDate: "2024-03-01"}))

	zero := 0.0
	require.NoError(t, validate.Struct(ScoreCreateRequest{StudentID: 1, CourseID: 1, AssessmentName: "Quiz", AssessmentDate: "2024-03-01", Score: &zero}))

	require.Error(t, validate.Struct(ScoreCreateRequest{StudentID: 1, CourseID: 1, AssessmentName: "Quiz", AssessmentDate: "2024-03-01", Score: &zero, MaxScore: &zero}))
}

func TestParseDateRoundTrip(t *testing.T) {
	parsed, err := ParseDate("2024-12-31")
	require.NoError(t, err)
	require.Equal(t, "2024-12-31", FormatDate(parsed))
}
