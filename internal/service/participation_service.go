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

// ParticipationService exposes participation use-cases.
type ParticipationService interface {
	Create(ctx context.Context, payload dto.ParticipationCreateRequest) (dto.ParticipationResponse, error)
	BulkCreate(ctx context.Context, payload dto.ParticipationBulkRequest) (dto.BulkWriteResponse, error)
	List(ctx context.Context, query dto.ParticipationListRequest) ([]dto.ParticipationListItem, error)
	ListForStudent(ctx context.Context, studentID uint, query dto.ParticipationListRequest) ([]dto.ParticipationListItem, error)
	Get(ctx context.Context, id uint) (dto.ParticipationResponse, error)
	Update(ctx context.Context, id uint, payload dto.ParticipationUpdateRequest) (dto.ParticipationResponse, error)
	Delete(ctx context.Context, id uint) error
}

type participationService struct {
	repo        repository.ParticipationRepository
	integrity   repository.IntegrityChecker
	validator   *validator.Validate
	bulk        *bulkRecorder
	invalidator ReportInvalidator
	logger      zerolog.Logger
}

// NewParticipationService constructs the participation service.
func NewParticipationService(repo repository.ParticipationRepository, integrity repository.IntegrityChecker, validate *validator.Validate, hooks BulkHooks, logger zerolog.Logger) ParticipationService {
	componentLogger := logger.With().Str("component", "participation_service").Logger()
	return &participationService{
		repo:        repo,
		integrity:   integrity,
		validator:   validate,
		bulk:        newBulkRecorder(hooks, componentLogger),
		invalidator: hooks.Invalidator,
		logger:      componentLogger,
	}
}

func (s *participationService) Create(ctx context.Context, payload dto.ParticipationCreateRequest) (dto.ParticipationResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ParticipationResponse{}, invalidInput(err)
	}
	record, err := participationFromRequest(payload)
	if err != nil {
		return dto.ParticipationResponse{}, err
	}

	result, err := s.integrity.Check(ctx, nil, record.StudentID, record.CourseID)
	if err != nil {
		return dto.ParticipationResponse{}, err
	}
	if !result.OK() {
		return dto.ParticipationResponse{}, integrityError(result)
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return dto.ParticipationResponse{}, recordInsertError(err, nil)
	}

	invalidate(ctx, s.invalidator, record.StudentID)
	return dto.NewParticipationResponse(record), nil
}

func (s *participationService) BulkCreate(ctx context.Context, payload dto.ParticipationBulkRequest) (dto.BulkWriteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BulkWriteResponse{}, invalidInput(err)
	}

	records := make([]models.ParticipationRecord, 0, len(payload.Records))
	for _, item := range payload.Records {
		record, err := participationFromRequest(item)
		if err != nil {
			return dto.BulkWriteResponse{}, err
		}
		records = append(records, record)
	}

	return runBulk(ctx, s.bulk, "participation", records, s.repo.CreateBatch)
}

func (s *participationService) List(ctx context.Context, query dto.ParticipationListRequest) ([]dto.ParticipationListItem, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, invalidInput(err)
	}
	from, to, err := parseDateRange(query.From, query.To)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, models.ParticipationFilter{
		StudentID: query.StudentID,
		CourseID:  query.CourseID,
		Metric:    cleanText(query.Metric),
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewParticipationListItems(rows), nil
}

func (s *participationService) ListForStudent(ctx context.Context, studentID uint, query dto.ParticipationListRequest) ([]dto.ParticipationListItem, error) {
	query.StudentID = &studentID
	return s.List(ctx, query)
}

func (s *participationService) Get(ctx context.Context, id uint) (dto.ParticipationResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ParticipationResponse{}, ErrParticipationNotFound
		}
		return dto.ParticipationResponse{}, err
	}
	return dto.NewParticipationResponse(record), nil
}

func (s *participationService) Update(ctx context.Context, id uint, payload dto.ParticipationUpdateRequest) (dto.ParticipationResponse, error) {
	if payload.EventDate == nil && payload.Metric == nil && payload.Value == nil {
		return dto.ParticipationResponse{}, ErrNoFieldsToUpdate
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.ParticipationResponse{}, invalidInput(err)
	}

	updates := make(map[string]interface{}, 3)
	if payload.EventDate != nil {
		date, err := mustDate(*payload.EventDate)
		if err != nil {
			return dto.ParticipationResponse{}, err
		}
		updates["event_date"] = date
	}
	if payload.Metric != nil {
		metric, err := cleanRequired(*payload.Metric)
		if err != nil {
			return dto.ParticipationResponse{}, err
		}
		updates["metric"] = metric
	}
	if payload.Value != nil {
		updates["value"] = *payload.Value
	}

	record, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ParticipationResponse{}, ErrParticipationNotFound
		}
		return dto.ParticipationResponse{}, err
	}

	invalidate(ctx, s.invalidator, record.StudentID)
	return dto.NewParticipationResponse(record), nil
}

func (s *participationService) Delete(ctx context.Context, id uint) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrParticipationNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrParticipationNotFound
		}
		return err
	}

	invalidate(ctx, s.invalidator, record.StudentID)
	return nil
}

func participationFromRequest(payload dto.ParticipationCreateRequest) (models.ParticipationRecord, error) {
	date, err := mustDate(payload.EventDate)
	if err != nil {
		return models.ParticipationRecord{}, err
	}
	metric, err := cleanRequired(payload.Metric)
	if err != nil {
		return models.ParticipationRecord{}, err
	}
	value := models.DefaultParticipationValue
	if payload.Value != nil {
		value = *payload.Value
	}
	return models.ParticipationRecord{
		StudentID: payload.StudentID,
		CourseID:  payload.CourseID,
		EventDate: date,
		Metric:    metric,
		Value:     value,
	}, nil
}
