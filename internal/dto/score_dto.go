package dto

import "github.com/noah-isme/edu-records-api/internal/models"

// ScoreCreateRequest records an assessment result. MaxScore defaults to 100.
type ScoreCreateRequest struct {
	StudentID      uint     `json:"student_id" validate:"required"`
	CourseID       uint     `json:"course_id" validate:"required"`
	AssessmentName string   `json:"assessment_name" validate:"required,min=1,max=150"`
	AssessmentDate string   `json:"assessment_date" validate:"required,isodate"`
	Score          *float64 `json:"score" validate:"required,gte=0"`
	MaxScore       *float64 `json:"max_score" validate:"omitempty,gt=0"`
}

// ScoreUpdateRequest carries the fields that may change on a score.
type ScoreUpdateRequest struct {
	AssessmentName *string  `json:"assessment_name" validate:"omitempty,min=1,max=150"`
	AssessmentDate *string  `json:"assessment_date" validate:"omitempty,isodate"`
	Score          *float64 `json:"score" validate:"omitempty,gte=0"`
	MaxScore       *float64 `json:"max_score" validate:"omitempty,gt=0"`
}

// ScoreResponse is the public view of a stored score.
type ScoreResponse struct {
	ID             uint    `json:"id"`
	StudentID      uint    `json:"student_id"`
	CourseID       uint    `json:"course_id"`
	AssessmentName string  `json:"assessment_name"`
	AssessmentDate string  `json:"assessment_date"`
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"max_score"`
}

// ScoreListItem is a score with student and course details.
type ScoreListItem struct {
	ID             uint    `json:"id"`
	StudentID      uint    `json:"student_id"`
	StudentCode    string  `json:"student_code"`
	FullName       string  `json:"full_name"`
	CourseID       uint    `json:"course_id"`
	CourseCode     string  `json:"course_code"`
	CourseName     string  `json:"course_name"`
	Term           string  `json:"term"`
	AssessmentName string  `json:"assessment_name"`
	AssessmentDate string  `json:"assessment_date"`
	Score          float64 `json:"score"`
	MaxScore       float64 `json:"max_score"`
}

// NewScoreResponse maps a score model into its response.
func NewScoreResponse(record models.ScoreRecord) ScoreResponse {
	return ScoreResponse{
		ID:             record.ID,
		StudentID:      record.StudentID,
		CourseID:       record.CourseID,
		AssessmentName: record.AssessmentName,
		AssessmentDate: FormatDate(record.AssessmentDate),
		Score:          record.Score,
		MaxScore:       record.MaxScore,
	}
}

// NewScoreListItems maps joined score rows into list items.
func NewScoreListItems(rows []models.ScoreRow) []ScoreListItem {
	items := make([]ScoreListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ScoreListItem{
			ID:             row.ID,
			StudentID:      row.StudentID,
			StudentCode:    row.StudentCode,
			FullName:       row.FullName,
			CourseID:       row.CourseID,
			CourseCode:     row.CourseCode,
			CourseName:     row.CourseName,
			Term:           row.Term,
			AssessmentName: row.AssessmentName,
			AssessmentDate: FormatDate(row.AssessmentDate),
			Score:          row.Score,
			MaxScore:       row.MaxScore,
		})
	}
	return items
}
