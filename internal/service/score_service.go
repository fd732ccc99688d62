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

// ScoreFilter narrows score listings.
type ScoreFilter struct {
	StudentID *uint
	CourseID  *uint
}

// ScoreService exposes assessment score use-cases.
type ScoreService interface {
	Create(ctx context.Context, payload dto.ScoreCreateRequest) (dto.ScoreResponse, error)
	List(ctx context.Context, filter ScoreFilter) ([]dto.ScoreListItem, error)
	Get(ctx context.Context, id uint) (dto.ScoreResponse, error)
	Update(ctx context.Context, id uint, payload dto.ScoreUpdateRequest) (dto.ScoreResponse, error)
	Delete(ctx context.Context, id uint) error
}

type scoreService struct {
	repo        repository.ScoreRepository
	integrity   repository.IntegrityChecker
	validator   *validator.Validate
	invalidator ReportInvalidator
	logger      zerolog.Logger
}

// NewScoreService constructs the score service. invalidator may be nil.
func NewScoreService(repo repository.ScoreRepository, integrity repository.IntegrityChecker, validate *validator.Validate, invalidator ReportInvalidator, logger zerolog.Logger) ScoreService {
	return &scoreService{
		repo:        repo,
		integrity:   integrity,
		validator:   validate,
		invalidator: invalidator,
		logger:      logger.With().Str("component", "score_service").Logger(),
	}
}

func (s *scoreService) Create(ctx context.Context, payload dto.ScoreCreateRequest) (dto.ScoreResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScoreResponse{}, invalidInput(err)
	}

	date, err := mustDate(payload.AssessmentDate)
	if err != nil {
		return dto.ScoreResponse{}, err
	}
	name, err := cleanRequired(payload.AssessmentName)
	if err != nil {
		return dto.ScoreResponse{}, err
	}

	record := models.ScoreRecord{
		StudentID:      payload.StudentID,
		CourseID:       payload.CourseID,
		AssessmentName: name,
		AssessmentDate: date,
		Score:          *payload.Score,
		MaxScore:       models.DefaultMaxScore,
	}
	if payload.MaxScore != nil {
		record.MaxScore = *payload.MaxScore
	}
	if record.Score > record.MaxScore {
		return dto.ScoreResponse{}, ErrScoreExceedsMax
	}

	result, err := s.integrity.Check(ctx, nil, record.StudentID, record.CourseID)
	if err != nil {
		return dto.ScoreResponse{}, err
	}
	if !result.OK() {
		return dto.ScoreResponse{}, integrityError(result)
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return dto.ScoreResponse{}, recordInsertError(err, ErrScoreDuplicate)
	}

	invalidate(ctx, s.invalidator, record.StudentID)
	return dto.NewScoreResponse(record), nil
}

func (s *scoreService) List(ctx context.Context, filter ScoreFilter) ([]dto.ScoreListItem, error) {
	rows, err := s.repo.List(ctx, models.ScoreFilter{StudentID: filter.StudentID, CourseID: filter.CourseID})
	if err != nil {
		return nil, err
	}
	return dto.NewScoreListItems(rows), nil
}

func (s *scoreService) Get(ctx context.Context, id uint) (dto.ScoreResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ScoreResponse{}, ErrScoreNotFound
		}
		return dto.ScoreResponse{}, err
	}
	return dto.NewScoreResponse(record), nil
}

// Update merges the supplied fields into the stored score and re-checks the
// score bound against the merged values.
func (s *scoreService) Update(ctx context.Context, id uint, payload dto.ScoreUpdateRequest) (dto.ScoreResponse, error) {
	if payload.AssessmentName == nil && payload.AssessmentDate == nil && payload.Score == nil && payload.MaxScore == nil {
		return dto.ScoreResponse{}, ErrNoFieldsToUpdate
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.ScoreResponse{}, invalidInput(err)
	}

	var name *string
	if payload.AssessmentName != nil {
		cleaned, err := cleanRequired(*payload.AssessmentName)
		if err != nil {
			return dto.ScoreResponse{}, err
		}
		name = &cleaned
	}

	record, err := s.repo.Update(ctx, id, func(score *models.ScoreRecord) error {
		if name != nil {
			score.AssessmentName = *name
		}
		if payload.AssessmentDate != nil {
			date, err := mustDate(*payload.AssessmentDate)
			if err != nil {
				return err
			}
			score.AssessmentDate = date
		}
		if payload.Score != nil {
			score.Score = *payload.Score
		}
		if payload.MaxScore != nil {
			score.MaxScore = *payload.MaxScore
		}
		if score.Score > score.MaxScore {
			return ErrScoreExceedsMax
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return dto.ScoreResponse{}, ErrScoreNotFound
		case errors.Is(err, repository.ErrDuplicate):
			return dto.ScoreResponse{}, wrapError(ErrScoreDuplicate, err)
		default:
			return dto.ScoreResponse{}, err
		}
	}

	invalidate(ctx, s.invalidator, record.StudentID)
	return dto.NewScoreResponse(record), nil
}

func (s *scoreService) Delete(ctx context.Context, id uint) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScoreNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScoreNotFound
		}
		return err
	}

	invalidate(ctx, s.invalidator, record.StudentID)
	return nil
}
