package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/models"
	"github.com/noah-isme/edu-records-api/internal/observability"
	"github.com/noah-isme/edu-records-api/internal/repository"
)

// ReportService builds per-course summaries for a student.
type ReportService interface {
	ReportInvalidator
	StudentReport(ctx context.Context, studentID uint) (dto.StudentReportResponse, error)
}

type reportService struct {
	students repository.StudentRepository
	reports  repository.ReportRepository
	cache    *redis.Client
	ttl      time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewReportService constructs the report service. A nil cache disables caching.
func NewReportService(students repository.StudentRepository, reports repository.ReportRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ReportService {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &reportService{
		students: students,
		reports:  reports,
		cache:    cache,
		ttl:      ttl,
		logger:   logger.With().Str("component", "report_service").Logger(),
		now:      time.Now,
	}
}

func reportCacheKey(studentID uint) string {
	return fmt.Sprintf("report:student:%d", studentID)
}

func (s *reportService) StudentReport(ctx context.Context, studentID uint) (dto.StudentReportResponse, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, reportCacheKey(studentID)).Result(); err == nil && cached != "" {
			var response dto.StudentReportResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				observability.ReportRequests().WithLabelValues("hit").Inc()
				return response, nil
			}
		} else if err != nil && !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("report cache read failed")
		}
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.StudentReportResponse{}, ErrStudentNotFound
		}
		return dto.StudentReportResponse{}, err
	}

	response, err := s.build(ctx, student)
	if err != nil {
		observability.ReportRequests().WithLabelValues("error").Inc()
		return dto.StudentReportResponse{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, reportCacheKey(studentID), payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Uint("student_id", studentID).Msg("failed to cache report")
			}
		}
	}

	observability.ReportRequests().WithLabelValues("miss").Inc()
	return response, nil
}

func (s *reportService) build(ctx context.Context, student models.Student) (dto.StudentReportResponse, error) {
	courses, err := s.reports.EnrolledCourses(ctx, student.ID)
	if err != nil {
		return dto.StudentReportResponse{}, err
	}
	attendance, err := s.reports.AttendanceCounts(ctx, student.ID)
	if err != nil {
		return dto.StudentReportResponse{}, err
	}
	participation, err := s.reports.ParticipationTotals(ctx, student.ID)
	if err != nil {
		return dto.StudentReportResponse{}, err
	}
	scores, err := s.reports.ScoreTotals(ctx, student.ID)
	if err != nil {
		return dto.StudentReportResponse{}, err
	}

	byCourse := make(map[uint]*dto.CourseReport, len(courses))
	reports := make([]dto.CourseReport, len(courses))
	for i, course := range courses {
		reports[i] = dto.CourseReport{Course: dto.NewCourseResponse(course)}
		byCourse[course.ID] = &reports[i]
	}

	for _, count := range attendance {
		report, ok := byCourse[count.CourseID]
		if !ok {
			continue
		}
		switch count.Status {
		case models.AttendanceStatusPresent:
			report.Attendance.Present += count.Total
		case models.AttendanceStatusAbsent:
			report.Attendance.Absent += count.Total
		case models.AttendanceStatusLate:
			report.Attendance.Late += count.Total
		case models.AttendanceStatusExcused:
			report.Attendance.Excused += count.Total
		}
		report.Attendance.Total += count.Total
	}

	for _, total := range participation {
		if report, ok := byCourse[total.CourseID]; ok {
			report.ParticipationEvents = total.Events
			report.ParticipationTotal = total.Total
		}
	}

	for _, total := range scores {
		report, ok := byCourse[total.CourseID]
		if !ok {
			continue
		}
		report.Assessments = total.Assessments
		if percentage, ok := models.ScorePercentage(total.Score, total.MaxScore); ok {
			report.ScorePercentage = &percentage
		}
	}

	for i := range reports {
		totals := reports[i].Attendance
		reports[i].AttendanceRate = models.AttendanceRate(totals.Present, totals.Late, totals.Total)
	}

	return dto.StudentReportResponse{
		Student:     dto.NewStudentResponse(student),
		Courses:     reports,
		GeneratedAt: s.now().UTC(),
	}, nil
}

// Invalidate drops cached reports for the given students.
func (s *reportService) Invalidate(ctx context.Context, studentIDs ...uint) {
	if s.cache == nil || len(studentIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(studentIDs))
	for _, id := range studentIDs {
		keys = append(keys, reportCacheKey(id))
	}
	if err := s.cache.Del(ctx, keys...).Err(); err != nil {
		s.logger.Warn().Err(err).Int("students", len(studentIDs)).Msg("failed to invalidate reports")
	}
}
