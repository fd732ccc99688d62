package dto

import "github.com/noah-isme/edu-records-api/internal/models"

// ParticipationCreateRequest records a participation event. Value defaults to 1.
type ParticipationCreateRequest struct {
	StudentID uint     `json:"student_id" validate:"required"`
	CourseID  uint     `json:"course_id" validate:"required"`
	EventDate string   `json:"event_date" validate:"required,isodate"`
	Metric    string   `json:"metric" validate:"required,min=1,max=50"`
	Value     *float64 `json:"value" validate:"omitempty,gte=0"`
}

// ParticipationBulkRequest carries between 1 and 1000 participation records.
type ParticipationBulkRequest struct {
	Records []ParticipationCreateRequest `json:"records" validate:"required,min=1,max=1000,dive"`
}

// ParticipationUpdateRequest carries the fields that may change on an event.
type ParticipationUpdateRequest struct {
	EventDate *string  `json:"event_date" validate:"omitempty,isodate"`
	Metric    *string  `json:"metric" validate:"omitempty,min=1,max=50"`
	Value     *float64 `json:"value" validate:"omitempty,gte=0"`
}

// ParticipationListRequest holds the optional, AND-combined list filters.
type ParticipationListRequest struct {
	StudentID *uint
	CourseID  *uint
	Metric    string `validate:"omitempty,max=50"`
	From      string `validate:"omitempty,isodate"`
	To        string `validate:"omitempty,isodate"`
}

// ParticipationResponse is the public view of a stored participation event.
type ParticipationResponse struct {
	ID        uint    `json:"id"`
	StudentID uint    `json:"student_id"`
	CourseID  uint    `json:"course_id"`
	EventDate string  `json:"event_date"`
	Metric    string  `json:"metric"`
	Value     float64 `json:"value"`
}

// ParticipationListItem is a participation event with student and course details.
type ParticipationListItem struct {
	ID          uint    `json:"id"`
	StudentID   uint    `json:"student_id"`
	StudentCode string  `json:"student_code"`
	FullName    string  `json:"full_name"`
	CourseID    uint    `json:"course_id"`
	CourseCode  string  `json:"course_code"`
	CourseName  string  `json:"course_name"`
	Term        string  `json:"term"`
	EventDate   string  `json:"event_date"`
	Metric      string  `json:"metric"`
	Value       float64 `json:"value"`
}

// NewParticipationResponse maps a participation model into its response.
func NewParticipationResponse(record models.ParticipationRecord) ParticipationResponse {
	return ParticipationResponse{
		ID:        record.ID,
		StudentID: record.StudentID,
		CourseID:  record.CourseID,
		EventDate: FormatDate(record.EventDate),
		Metric:    record.Metric,
		Value:     record.Value,
	}
}

// NewParticipationListItems maps joined participation rows into list items.
func NewParticipationListItems(rows []models.ParticipationRow) []ParticipationListItem {
	items := make([]ParticipationListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ParticipationListItem{
			ID:          row.ID,
			StudentID:   row.StudentID,
			StudentCode: row.StudentCode,
			FullName:    row.FullName,
			CourseID:    row.CourseID,
			CourseCode:  row.CourseCode,
			CourseName:  row.CourseName,
			Term:        row.Term,
			EventDate:   FormatDate(row.EventDate),
			Metric:      row.Metric,
			Value:       row.Value,
		})
	}
	return items
}
