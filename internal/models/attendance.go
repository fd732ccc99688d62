package models

import (
	"time"

	"gorm.io/datatypes"
)

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"
	AttendanceStatusExcused AttendanceStatus = "excused"
)

// AttendanceStatuses lists every supported status in display order.
var AttendanceStatuses = []AttendanceStatus{
	AttendanceStatusPresent,
	AttendanceStatusAbsent,
	AttendanceStatusLate,
	AttendanceStatusExcused,
}

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceStatusPresent, AttendanceStatusAbsent, AttendanceStatusLate, AttendanceStatusExcused:
		return true
	default:
		return false
	}
}

// AttendanceRecord stores one status per student, course and calendar day.
type AttendanceRecord struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	StudentID  uint             `gorm:"not null;uniqueIndex:idx_attendance_student_course_date" json:"student_id"`
	CourseID   uint             `gorm:"not null;uniqueIndex:idx_attendance_student_course_date;index" json:"course_id"`
	AttendDate datatypes.Date   `gorm:"not null;uniqueIndex:idx_attendance_student_course_date" json:"attend_date"`
	Status     AttendanceStatus `gorm:"size:10;not null;index" json:"status"`
	Student    Student          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Course     Course           `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// TableName keeps the singular table name used by existing deployments.
func (AttendanceRecord) TableName() string {
	return "attendance"
}

// Pair returns the student and course the record belongs to.
func (r AttendanceRecord) Pair() (uint, uint) {
	return r.StudentID, r.CourseID
}

// AttendanceFilter scopes attendance listing queries.
type AttendanceFilter struct {
	StudentID *uint
	CourseID  *uint
	Status    AttendanceStatus
	From      *datatypes.Date
	To        *datatypes.Date
}

// AttendanceRow is an attendance record joined with student and course details.
type AttendanceRow struct {
	ID          uint             `json:"id"`
	StudentID   uint             `json:"student_id"`
	StudentCode string           `json:"student_code"`
	FullName    string           `json:"full_name"`
	CourseID    uint             `json:"course_id"`
	CourseCode  string           `json:"course_code"`
	CourseName  string           `json:"course_name"`
	Term        string           `json:"term"`
	AttendDate  datatypes.Date   `json:"attend_date"`
	Status      AttendanceStatus `json:"status"`
}
