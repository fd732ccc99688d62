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

// CourseService exposes course catalogue use-cases.
type CourseService interface {
	Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	List(ctx context.Context, term string) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id uint) (dto.CourseResponse, error)
	GetByCodeAndTerm(ctx context.Context, code, term string) (dto.CourseResponse, error)
	Update(ctx context.Context, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, id uint) error
}

type courseService struct {
	repo      repository.CourseRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseService constructs the course service.
func NewCourseService(repo repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) Create(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, invalidInput(err)
	}

	course := models.Course{}
	var err error
	if course.Code, err = cleanRequired(payload.Code); err != nil {
		return dto.CourseResponse{}, err
	}
	if course.Name, err = cleanRequired(payload.Name); err != nil {
		return dto.CourseResponse{}, err
	}
	if course.Term, err = cleanRequired(payload.Term); err != nil {
		return dto.CourseResponse{}, err
	}

	if err := s.repo.Create(ctx, &course); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.CourseResponse{}, wrapError(ErrCourseExists, err)
		}
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Str("term", course.Term).Msg("course created")
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) List(ctx context.Context, term string) ([]dto.CourseResponse, error) {
	courses, err := s.repo.List(ctx, cleanText(term))
	if err != nil {
		return nil, err
	}
	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, dto.NewCourseResponse(course))
	}
	return responses, nil
}

func (s *courseService) Get(ctx context.Context, id uint) (dto.CourseResponse, error) {
	course, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) GetByCodeAndTerm(ctx context.Context, code, term string) (dto.CourseResponse, error) {
	course, err := s.repo.GetByCodeAndTerm(ctx, cleanText(code), cleanText(term))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Update(ctx context.Context, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if payload.Code == nil && payload.Name == nil && payload.Term == nil {
		return dto.CourseResponse{}, ErrNoFieldsToUpdate
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, invalidInput(err)
	}

	updates := make(map[string]interface{}, 3)
	fields := []struct {
		column string
		value  *string
	}{
		{"code", payload.Code},
		{"name", payload.Name},
		{"term", payload.Term},
	}
	for _, field := range fields {
		if field.value == nil {
			continue
		}
		cleaned, err := cleanRequired(*field.value)
		if err != nil {
			return dto.CourseResponse{}, err
		}
		updates[field.column] = cleaned
	}

	course, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return dto.CourseResponse{}, ErrCourseNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return dto.CourseResponse{}, wrapError(ErrCourseExists, err)
		default:
			return dto.CourseResponse{}, err
		}
	}
	return dto.NewCourseResponse(course), nil
}

func (s *courseService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrCourseNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return wrapError(ErrCourseReferenced, err)
		default:
			return err
		}
	}

	s.logger.Info().Uint("course_id", id).Msg("course deleted")
	return nil
}
