package models

import (
	"time"

	"gorm.io/datatypes"
)

// DefaultParticipationValue applies when a record omits its value.
const DefaultParticipationValue = 1.0

// ParticipationRecord captures a participation event. Several events may share
// the same day and metric.
type ParticipationRecord struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	StudentID uint           `gorm:"not null;index" json:"student_id"`
	CourseID  uint           `gorm:"not null;index" json:"course_id"`
	EventDate datatypes.Date `gorm:"not null;index" json:"event_date"`
	Metric    string         `gorm:"size:50;not null" json:"metric"`
	Value     float64        `gorm:"not null" json:"value"`
	Student   Student        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Course    Course         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TableName keeps the singular table name used by existing deployments.
func (ParticipationRecord) TableName() string {
	return "participation"
}

// Pair returns the student and course the record belongs to.
func (r ParticipationRecord) Pair() (uint, uint) {
	return r.StudentID, r.CourseID
}

// ParticipationFilter scopes participation listing queries.
type ParticipationFilter struct {
	StudentID *uint
	CourseID  *uint
	Metric    string
	From      *datatypes.Date
	To        *datatypes.Date
}

// ParticipationRow is a participation record joined with student and course details.
type ParticipationRow struct {
	ID          uint           `json:"id"`
	StudentID   uint           `json:"student_id"`
	StudentCode string         `json:"student_code"`
	FullName    string         `json:"full_name"`
	CourseID    uint           `json:"course_id"`
	CourseCode  string         `json:"course_code"`
	CourseName  string         `json:"course_name"`
	Term        string         `json:"term"`
	EventDate   datatypes.Date `json:"event_date"`
	Metric      string         `json:"metric"`
	Value       float64        `json:"value"`
}
