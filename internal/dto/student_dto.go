package dto

import "github.com/noah-isme/edu-records-api/internal/models"

// StudentCreateRequest is the payload for registering a student.
type StudentCreateRequest struct {
	Code     string `json:"code" validate:"required,min=1,max=50"`
	FullName string `json:"full_name" validate:"required,min=1,max=150"`
}

// StudentUpdateRequest carries the fields that may change on a student.
type StudentUpdateRequest struct {
	Code     *string `json:"code" validate:"omitempty,min=1,max=50"`
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=150"`
}

// StudentResponse is the public view of a student.
type StudentResponse struct {
	ID       uint   `json:"id"`
	Code     string `json:"code"`
	FullName string `json:"full_name"`
}

// NewStudentResponse maps a student model into its response.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:       student.ID,
		Code:     student.Code,
		FullName: student.FullName,
	}
}
