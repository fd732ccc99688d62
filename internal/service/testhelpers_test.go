package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/edu-records-api/internal/database"
	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := "svc_" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectSQLite(database.MemoryDSN(name), database.PoolConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []RecordEvent
}

func (p *recordingPublisher) PublishRecords(_ context.Context, event RecordEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type recordingInvalidator struct {
	mu  sync.Mutex
	ids []uint
}

func (r *recordingInvalidator) Invalidate(_ context.Context, studentIDs ...uint) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, studentIDs...)
}

type fixture struct {
	db            *gorm.DB
	students      StudentService
	courses       CourseService
	enrollments   EnrollmentService
	attendance    AttendanceService
	participation ParticipationService
	scores        ScoreService
	publisher     *recordingPublisher
	invalidator   *recordingInvalidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupServiceDB(t)
	validate := dto.NewValidator()
	logger := testLogger()

	integrity := repository.NewIntegrityChecker(db)
	writer := repository.NewBulkWriter(db, integrity, nil, 5*time.Second)
	publisher := &recordingPublisher{}
	invalidator := &recordingInvalidator{}
	hooks := BulkHooks{Publisher: publisher, Invalidator: invalidator}

	return &fixture{
		db:            db,
		students:      NewStudentService(repository.NewStudentRepository(db), validate, invalidator, logger),
		courses:       NewCourseService(repository.NewCourseRepository(db), validate, logger),
		enrollments:   NewEnrollmentService(repository.NewEnrollmentRepository(db), integrity, validate, invalidator, logger),
		attendance:    NewAttendanceService(repository.NewAttendanceRepository(db, writer), integrity, validate, hooks, logger),
		participation: NewParticipationService(repository.NewParticipationRepository(db, writer), integrity, validate, hooks, logger),
		scores:        NewScoreService(repository.NewScoreRepository(db), integrity, validate, invalidator, logger),
		publisher:     publisher,
		invalidator:   invalidator,
	}
}

// enrolledPair creates a student and course and enrolls the student.
func (f *fixture) enrolledPair(t *testing.T, code string) (dto.StudentResponse, dto.CourseResponse) {
	t.Helper()
	ctx := context.Background()
	student, err := f.students.Create(ctx, dto.StudentCreateRequest{Code: code, FullName: "Student " + code})
	require.NoError(t, err)
	course, err := f.courses.Create(ctx, dto.CourseCreateRequest{Code: "C-" + code, Name: "Course " + code, Term: "2024A"})
	require.NoError(t, err)
	_, err = f.enrollments.Create(ctx, dto.EnrollmentCreateRequest{StudentID: student.ID, CourseID: course.ID})
	require.NoError(t, err)
	return student, course
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var total int64
	require.NoError(t, f.db.Model(model).Count(&total).Error)
	return total
}


func floatPtr(v float64) *float64 { return &v }

func stringPtr(v string) *string { return &v }
