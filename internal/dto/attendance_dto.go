package dto

import "github.com/noah-isme/edu-records-api/internal/models"

// AttendanceCreateRequest marks a student's status for one course day.
type AttendanceCreateRequest struct {
	StudentID  uint   `json:"student_id" validate:"required"`
	CourseID   uint   `json:"course_id" validate:"required"`
	AttendDate string `json:"attend_date" validate:"required,isodate"`
	Status     string `json:"status" validate:"required,attendance_status"`
}

// AttendanceBulkRequest carries between 1 and 500 attendance records.
type AttendanceBulkRequest struct {
	Records []AttendanceCreateRequest `json:"records" validate:"required,min=1,max=500,dive"`
}

// AttendanceUpdateRequest changes the status of an existing record.
type AttendanceUpdateRequest struct {
	Status string `json:"status" validate:"required,attendance_status"`
}

// AttendanceListRequest holds the optional, AND-combined list filters.
type AttendanceListRequest struct {
	StudentID *uint
	CourseID  *uint
	Status    string `validate:"omitempty,attendance_status"`
	From      string `validate:"omitempty,isodate"`
	To        string `validate:"omitempty,isodate"`
}

// AttendanceResponse is the public view of a stored attendance record.
type AttendanceResponse struct {
	ID         uint   `json:"id"`
	StudentID  uint   `json:"student_id"`
	CourseID   uint   `json:"course_id"`
	AttendDate string `json:"attend_date"`
	Status     string `json:"status"`
}

// AttendanceListItem is an attendance record with student and course details.
type AttendanceListItem struct {
	ID          uint   `json:"id"`
	StudentID   uint   `json:"student_id"`
	StudentCode string `json:"student_code"`
	FullName    string `json:"full_name"`
	CourseID    uint   `json:"course_id"`
	CourseCode  string `json:"course_code"`
	CourseName  string `json:"course_name"`
	Term        string `json:"term"`
	AttendDate  string `json:"attend_date"`
	Status      string `json:"status"`
}

// BulkWriteResponse reports how many records a bulk call stored.
type BulkWriteResponse struct {
	Inserted int `json:"inserted"`
	Total    int `json:"total"`
}

// NewAttendanceResponse maps an attendance model into its response.
func NewAttendanceResponse(record models.AttendanceRecord) AttendanceResponse {
	return AttendanceResponse{
		ID:         record.ID,
		StudentID:  record.StudentID,
		CourseID:   record.CourseID,
		AttendDate: FormatDate(record.AttendDate),
		Status:     string(record.Status),
	}
}

// NewAttendanceListItems maps joined attendance rows into list items.
func NewAttendanceListItems(rows []models.AttendanceRow) []AttendanceListItem {
	items := make([]AttendanceListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, AttendanceListItem{
			ID:          row.ID,
			StudentID:   row.StudentID,
			StudentCode: row.StudentCode,
			FullName:    row.FullName,
			CourseID:    row.CourseID,
			CourseCode:  row.CourseCode,
			CourseName:  row.CourseName,
			Term:        row.Term,
			AttendDate:  FormatDate(row.AttendDate),
			Status:      string(row.Status),
		})
	}
	return items
}
