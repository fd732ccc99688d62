package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// ReportRepository runs the aggregate queries behind student reports and rosters.
type ReportRepository interface {
	EnrolledCourses(ctx context.Context, studentID uint) ([]models.Course, error)
	AttendanceCounts(ctx context.Context, studentID uint) ([]models.AttendanceCount, error)
	ParticipationTotals(ctx context.Context, studentID uint) ([]models.ParticipationTotal, error)
	ScoreTotals(ctx context.Context, studentID uint) ([]models.ScoreTotal, error)
	CourseRoster(ctx context.Context, courseID uint) ([]models.RosterRow, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) EnrolledCourses(ctx context.Context, studentID uint) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Joins("JOIN enrollments e ON e.course_id = courses.id").
		Where("e.student_id = ?", studentID).
		Order("courses.term DESC, courses.code ASC").
		Find(&courses).Error
	if err != nil {
		return nil, translateError(err)
	}
	return courses, nil
}

func (r *reportRepository) AttendanceCounts(ctx context.Context, studentID uint) ([]models.AttendanceCount, error) {
	var rows []models.AttendanceCount
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceRecord{}).
		Select("course_id, status, COUNT(*) AS total").
		Where("student_id = ?", studentID).
		Group("course_id, status").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *reportRepository) ParticipationTotals(ctx context.Context, studentID uint) ([]models.ParticipationTotal, error) {
	var rows []models.ParticipationTotal
	err := r.db.WithContext(ctx).
		Model(&models.ParticipationRecord{}).
		Select("course_id, COUNT(*) AS events, COALESCE(SUM(value), 0) AS total").
		Where("student_id = ?", studentID).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *reportRepository) ScoreTotals(ctx context.Context, studentID uint) ([]models.ScoreTotal, error) {
	var rows []models.ScoreTotal
	err := r.db.WithContext(ctx).
		Model(&models.ScoreRecord{}).
		Select("course_id, COUNT(*) AS assessments, COALESCE(SUM(score), 0) AS score, COALESCE(SUM(max_score), 0) AS max_score").
		Where("student_id = ?", studentID).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}

func (r *reportRepository) CourseRoster(ctx context.Context, courseID uint) ([]models.RosterRow, error) {
	var rows []models.RosterRow
	err := r.db.WithContext(ctx).
		Table("enrollments AS e").
		Select(`s.id AS student_id, s.code AS student_code, s.full_name,
			SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END) AS present,
			SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END) AS absent,
			SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END) AS late,
			SUM(CASE WHEN a.status = ? THEN 1 ELSE 0 END) AS excused`,
			models.AttendanceStatusPresent, models.AttendanceStatusAbsent,
			models.AttendanceStatusLate, models.AttendanceStatusExcused).
		Joins("JOIN students s ON s.id = e.student_id").
		Joins("LEFT JOIN attendance a ON a.student_id = e.student_id AND a.course_id = e.course_id").
		Where("e.course_id = ?", courseID).
		Group("s.id, s.code, s.full_name").
		Order("s.code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return rows, nil
}
