package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/models"
	"github.com/noah-isme/edu-records-api/internal/repository"
)

// StudentService exposes student registry use-cases.
type StudentService interface {
	Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error)
	List(ctx context.Context) ([]dto.StudentResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	GetByCode(ctx context.Context, code string) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo        repository.StudentRepository
	validator   *validator.Validate
	invalidator ReportInvalidator
	logger      zerolog.Logger
}

// NewStudentService constructs the student service. invalidator may be nil.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, invalidator ReportInvalidator, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:        repo,
		validator:   validate,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Create(ctx context.Context, payload dto.StudentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, invalidInput(err)
	}

	code, err := cleanRequired(payload.Code)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	fullName, err := cleanRequired(payload.FullName)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	student := models.Student{Code: code, FullName: fullName}
	if err := s.repo.Create(ctx, &student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.StudentResponse{}, wrapError(ErrStudentCodeTaken, err)
		}
		return dto.StudentResponse{}, err
	}

	s.logger.Info().Uint("student_id", student.ID).Msg("student created")
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, dto.NewStudentResponse(student))
	}
	return responses, nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) GetByCode(ctx context.Context, code string) (dto.StudentResponse, error) {
	student, err := s.repo.GetByCode(ctx, cleanText(code))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id uint, payload dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if payload.Code == nil && payload.FullName == nil {
		return dto.StudentResponse{}, ErrNoFieldsToUpdate
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, invalidInput(err)
	}

	updates := make(map[string]interface{}, 2)
	if payload.Code != nil {
		code, err := cleanRequired(*payload.Code)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		updates["code"] = code
	}
	if payload.FullName != nil {
		fullName, err := cleanRequired(*payload.FullName)
		if err != nil {
			return dto.StudentResponse{}, err
		}
		updates["full_name"] = fullName
	}

	student, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return dto.StudentResponse{}, ErrStudentNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return dto.StudentResponse{}, wrapError(ErrStudentCodeTaken, err)
		default:
			return dto.StudentResponse{}, err
		}
	}

	invalidate(ctx, s.invalidator, student.ID)
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrStudentNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return wrapError(ErrStudentReferenced, err)
		default:
			return err
		}
	}

	invalidate(ctx, s.invalidator, id)
	s.logger.Info().Uint("student_id", id).Msg("student deleted")
	return nil
}
