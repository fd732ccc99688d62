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

// AttendanceService exposes attendance use-cases.
type AttendanceService interface {
	Create(ctx context.Context, payload dto.AttendanceCreateRequest) (dto.AttendanceResponse, error)
	BulkCreate(ctx context.Context, payload dto.AttendanceBulkRequest) (dto.BulkWriteResponse, error)
	List(ctx context.Context, query dto.AttendanceListRequest) ([]dto.AttendanceListItem, error)
	ListForStudent(ctx context.Context, studentID uint, query dto.AttendanceListRequest) ([]dto.AttendanceListItem, error)
	Get(ctx context.Context, id uint) (dto.AttendanceResponse, error)
	Update(ctx context.Context, id uint, payload dto.AttendanceUpdateRequest) (dto.AttendanceResponse, error)
	Delete(ctx context.Context, id uint) error
}

type attendanceService struct {
	repo        repository.AttendanceRepository
	integrity   repository.IntegrityChecker
	validator   *validator.Validate
	bulk        *bulkRecorder
	invalidator ReportInvalidator
	logger      zerolog.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo repository.AttendanceRepository, integrity repository.IntegrityChecker, validate *validator.Validate, hooks BulkHooks, logger zerolog.Logger) AttendanceService {
	componentLogger := logger.With().Str("component", "attendance_service").Logger()
	return &attendanceService{
		repo:        repo,
		integrity:   integrity,
		validator:   validate,
		bulk:        newBulkRecorder(hooks, componentLogger),
		invalidator: hooks.Invalidator,
		logger:      componentLogger,
	}
}

func (s *attendanceService) Create(ctx context.Context, payload dto.AttendanceCreateRequest) (dto.AttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceResponse{}, invalidInput(err)
	}
	record, err := attendanceFromRequest(payload)
	if err != nil {
		return dto.AttendanceResponse{}, err
	}

	result, err := s.integrity.Check(ctx, nil, record.StudentID, record.CourseID)
	if err != nil {
		return dto.AttendanceResponse{}, err
	}
	if !result.OK() {
		return dto.AttendanceResponse{}, integrityError(result)
	}

	if err := s.repo.Create(ctx, &record); err != nil {
		return dto.AttendanceResponse{}, recordInsertError(err, ErrAttendanceDuplicate)
	}

	invalidate(ctx, s.invalidator, record.StudentID)
	return dto.NewAttendanceResponse(record), nil
}

func (s *attendanceService) BulkCreate(ctx context.Context, payload dto.AttendanceBulkRequest) (dto.BulkWriteResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.BulkWriteResponse{}, invalidInput(err)
	}

	records := make([]models.AttendanceRecord, 0, len(payload.Records))
	for _, item := range payload.Records {
		record, err := attendanceFromRequest(item)
		if err != nil {
			return dto.BulkWriteResponse{}, err
		}
		records = append(records, record)
	}

	return runBulk(ctx, s.bulk, "attendance", records, s.repo.CreateBatch)
}

func (s *attendanceService) List(ctx context.Context, query dto.AttendanceListRequest) ([]dto.AttendanceListItem, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, invalidInput(err)
	}
	from, to, err := parseDateRange(query.From, query.To)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, models.AttendanceFilter{
		StudentID: query.StudentID,
		CourseID:  query.CourseID,
		Status:    models.AttendanceStatus(query.Status),
		From:      from,
		To:        to,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewAttendanceListItems(rows), nil
}

func (s *attendanceService) ListForStudent(ctx context.Context, studentID uint, query dto.AttendanceListRequest) ([]dto.AttendanceListItem, error) {
	query.StudentID = &studentID
	return s.List(ctx, query)
}

func (s *attendanceService) Get(ctx context.Context, id uint) (dto.AttendanceResponse, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AttendanceResponse{}, ErrAttendanceNotFound
		}
		return dto.AttendanceResponse{}, err
	}
	return dto.NewAttendanceResponse(record), nil
}

func (s *attendanceService) Update(ctx context.Context, id uint, payload dto.AttendanceUpdateRequest) (dto.AttendanceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AttendanceResponse{}, invalidInput(err)
	}

	record, err := s.repo.UpdateStatus(ctx, id, models.AttendanceStatus(payload.Status))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.AttendanceResponse{}, ErrAttendanceNotFound
		}
		return dto.AttendanceResponse{}, err
	}

	invalidate(ctx, s.invalidator, record.StudentID)
	return dto.NewAttendanceResponse(record), nil
}

func (s *attendanceService) Delete(ctx context.Context, id uint) error {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAttendanceNotFound
		}
		return err
	}

	invalidate(ctx, s.invalidator, record.StudentID)
	return nil
}

func attendanceFromRequest(payload dto.AttendanceCreateRequest) (models.AttendanceRecord, error) {
	date, err := mustDate(payload.AttendDate)
	if err != nil {
		return models.AttendanceRecord{}, err
	}
	return models.AttendanceRecord{
		StudentID:  payload.StudentID,
		CourseID:   payload.CourseID,
		AttendDate: date,
		Status:     models.AttendanceStatus(payload.Status),
	}, nil
}
