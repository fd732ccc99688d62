package dto

import "github.com/noah-isme/edu-records-api/internal/models"

// EnrollmentCreateRequest enrolls a student in a course.
type EnrollmentCreateRequest struct {
	StudentID uint `json:"student_id" validate:"required"`
	CourseID  uint `json:"course_id" validate:"required"`
}

// EnrollmentResponse is the view returned after creating an enrollment.
type EnrollmentResponse struct {
	ID        uint `json:"id"`
	StudentID uint `json:"student_id"`
	CourseID  uint `json:"course_id"`
}

// NewEnrollmentResponse maps an enrollment model into its response.
func NewEnrollmentResponse(enrollment models.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:        enrollment.ID,
		StudentID: enrollment.StudentID,
		CourseID:  enrollment.CourseID,
	}
}
