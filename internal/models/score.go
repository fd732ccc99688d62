package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultMaxScore applies when a score omits its maximum.
const DefaultMaxScore = 100.0

// ScoreRecord is the result of one assessment. A student holds at most one score
// per assessment name within a course.
type ScoreRecord struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	StudentID      uint           `gorm:"not null;uniqueIndex:idx_scores_student_course_assessment" json:"student_id"`
	CourseID       uint           `gorm:"not null;uniqueIndex:idx_scores_student_course_assessment;index" json:"course_id"`
	AssessmentName string         `gorm:"size:150;not null;uniqueIndex:idx_scores_student_course_assessment" json:"assessment_name"`
	AssessmentDate datatypes.Date `gorm:"not null" json:"assessment_date"`
	Score          float64        `gorm:"not null" json:"score"`
	MaxScore       float64        `gorm:"not null" json:"max_score"`
	Student        Student        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Course         Course         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName matches the plural table name used by existing deployments.
func (ScoreRecord) TableName() string {
	return "scores"
}

// ScoreFilter scopes score listing queries.
type ScoreFilter struct {
	StudentID *uint
	CourseID  *uint
}

// ScoreRow is a score joined with student and course details.
type ScoreRow struct {
	ID             uint           `json:"id"`
	StudentID      uint           `json:"student_id"`
	StudentCode    string         `json:"student_code"`
	FullName       string         `json:"full_name"`
	CourseID       uint           `json:"course_id"`
	CourseCode     string         `json:"course_code"`
	CourseName     string         `json:"course_name"`
	Term           string         `json:"term"`
	AssessmentName string         `json:"assessment_name"`
	AssessmentDate datatypes.Date `json:"assessment_date"`
	Score          float64        `json:"score"`
	MaxScore       float64        `json:"max_score"`
}
