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

// EnrollmentService exposes enrollment use-cases.
type EnrollmentService interface {
	Create(ctx context.Context, payload dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error)
	List(ctx context.Context, filter repository.EnrollmentFilter) ([]models.EnrollmentRow, error)
	Get(ctx context.Context, id uint) (models.EnrollmentRow, error)
	Delete(ctx context.Context, id uint) error
}

type enrollmentService struct {
	repo        repository.EnrollmentRepository
	integrity   repository.IntegrityChecker
	validator   *validator.Validate
	invalidator ReportInvalidator
	logger      zerolog.Logger
}

// NewEnrollmentService constructs the enrollment service. invalidator may be nil.
func NewEnrollmentService(repo repository.EnrollmentRepository, integrity repository.IntegrityChecker, validate *validator.Validate, invalidator ReportInvalidator, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		repo:        repo,
		integrity:   integrity,
		validator:   validate,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
	}
}

func (s *enrollmentService) Create(ctx context.Context, payload dto.EnrollmentCreateRequest) (dto.EnrollmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, invalidInput(err)
	}

	result, err := s.integrity.Check(ctx, nil, payload.StudentID, payload.CourseID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}
	switch {
	case result.OK():
		return dto.EnrollmentResponse{}, ErrAlreadyEnrolled
	case result.Class() == repository.IntegrityClassNotFound:
		return dto.EnrollmentResponse{}, integrityError(result)
	}

	enrollment := models.Enrollment{StudentID: payload.StudentID, CourseID: payload.CourseID}
	if err := s.repo.Create(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, recordInsertError(err, ErrAlreadyEnrolled)
	}

	invalidate(ctx, s.invalidator, enrollment.StudentID)
	s.logger.Info().
		Uint("student_id", enrollment.StudentID).
		Uint("course_id", enrollment.CourseID).
		Msg("student enrolled")
	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) List(ctx context.Context, filter repository.EnrollmentFilter) ([]models.EnrollmentRow, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.EnrollmentRow{}
	}
	return rows, nil
}

func (s *enrollmentService) Get(ctx context.Context, id uint) (models.EnrollmentRow, error) {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.EnrollmentRow{}, ErrEnrollmentNotFound
		}
		return models.EnrollmentRow{}, err
	}
	return row, nil
}

func (s *enrollmentService) Delete(ctx context.Context, id uint) error {
	row, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEnrollmentNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrEnrollmentNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return wrapError(ErrEnrollmentReferenced, err)
		default:
			return err
		}
	}

	invalidate(ctx, s.invalidator, row.StudentID)
	return nil
}
