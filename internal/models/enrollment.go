package models

import "time"

// Enrollment authorises a student to hold attendance, participation and score
// records in a course.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"student_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_enrollments_student_course;index" json:"course_id"`
	Student   Student   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Course    Course    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// EnrollmentRow is an enrollment joined with student and course details.
type EnrollmentRow struct {
	ID          uint   `json:"id"`
	StudentID   uint   `json:"student_id"`
	StudentCode string `json:"student_code"`
	FullName    string `json:"full_name"`
	CourseID    uint   `json:"course_id"`
	CourseCode  string `json:"course_code"`
	CourseName  string `json:"course_name"`
	Term        string `json:"term"`
}
