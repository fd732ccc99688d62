package dto

import "github.com/noah-isme/edu-records-api/internal/models"

// CourseCreateRequest is the payload for creating a course offering.
type CourseCreateRequest struct {
	Code string `json:"code" validate:"required,min=1,max=50"`
	Name string `json:"name" validate:"required,min=1,max=150"`
	Term string `json:"term" validate:"required,min=1,max=50"`
}

// CourseUpdateRequest carries the fields that may change on a course.
type CourseUpdateRequest struct {
	Code *string `json:"code" validate:"omitempty,min=1,max=50"`
	Name *string `json:"name" validate:"omitempty,min=1,max=150"`
	Term *string `json:"term" validate:"omitempty,min=1,max=50"`
}

// CourseResponse is the public view of a course.
type CourseResponse struct {
	ID   uint   `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
	Term string `json:"term"`
}

// NewCourseResponse maps a course model into its response.
func NewCourseResponse(course models.Course) CourseResponse {
	return CourseResponse{
		ID:   course.ID,
		Code: course.Code,
		Name: course.Name,
		Term: course.Term,
	}
}
