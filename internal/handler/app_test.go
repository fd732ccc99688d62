package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/edu-records-api/internal/config"
	"github.com/noah-isme/edu-records-api/internal/database"
	"github.com/noah-isme/edu-records-api/internal/dto"
	"github.com/noah-isme/edu-records-api/internal/handler"
	"github.com/noah-isme/edu-records-api/internal/middleware"
	"github.com/noah-isme/edu-records-api/internal/repository"
	"github.com/noah-isme/edu-records-api/internal/router"
	"github.com/noah-isme/edu-records-api/internal/service"
)

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	name := "handler_" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectSQLite(database.MemoryDSN(name), database.PoolConfig{MaxOpenConns: 1})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := zerolog.Nop()
	validate := dto.NewValidator()
	integrity := repository.NewIntegrityChecker(db)
	writer := repository.NewBulkWriter(db, integrity, nil, 5*time.Second)
	studentRepo := repository.NewStudentRepository(db)

	reports := service.NewReportService(studentRepo, repository.NewReportRepository(db), nil, time.Minute, logger)
	hooks := service.BulkHooks{Invalidator: reports}

	cfg := config.Config{AppName: "edu-test", AppEnv: "test"}
	app := fiber.New()
	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		StudentHandler:       handler.NewStudentHandler(service.NewStudentService(studentRepo, validate, reports, logger), reports, logger),
		CourseHandler:        handler.NewCourseHandler(service.NewCourseService(repository.NewCourseRepository(db), validate, logger), logger),
		EnrollmentHandler:    handler.NewEnrollmentHandler(service.NewEnrollmentService(repository.NewEnrollmentRepository(db), integrity, validate, reports, logger), logger),
		AttendanceHandler:    handler.NewAttendanceHandler(service.NewAttendanceService(repository.NewAttendanceRepository(db, writer), integrity, validate, hooks, logger), nil, logger),
		ParticipationHandler: handler.NewParticipationHandler(service.NewParticipationService(repository.NewParticipationRepository(db, writer), integrity, validate, hooks, logger), nil, logger),
		ScoreHandler:         handler.NewScoreHandler(service.NewScoreService(repository.NewScoreRepository(db), integrity, validate, reports, logger), logger),
	})

	return &testApp{app: app, db: db}
}

func (a *testApp) do(t *testing.T, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch value := body.(type) {
		case string:
			reader = strings.NewReader(value)
		default:
			payload, err := json.Marshal(value)
			require.NoError(t, err)
			reader = bytes.NewReader(payload)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, data
}

// seedPair creates a student and a course over HTTP and optionally enrolls them.
func (a *testApp) seedPair(t *testing.T, code string, enroll bool) (uint, uint) {
	t.Helper()

	resp, body := a.do(t, http.MethodPost, "/api/students", map[string]string{"code": code, "full_name": "Student " + code})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var student envelope[dto.StudentResponse]
	require.NoError(t, json.Unmarshal(body, &student))

	resp, body = a.do(t, http.MethodPost, "/api/courses", map[string]string{"code": "C-" + code, "name": "Course " + code, "term": "2024A"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	var course envelope[dto.CourseResponse]
	require.NoError(t, json.Unmarshal(body, &course))

	if enroll {
		resp, body = a.do(t, http.MethodPost, "/api/enrollments", map[string]uint{"student_id": student.Data.ID, "course_id": course.Data.ID})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	}
	return student.Data.ID, course.Data.ID
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func decodeEnvelope[T any](t *testing.T, body []byte) envelope[T] {
	t.Helper()
	var payload envelope[T]
	require.NoError(t, json.Unmarshal(body, &payload), string(body))
	return payload
}

func requireSchema(t *testing.T, file string, body []byte) {
	t.Helper()

	schemaPath, err := filepath.Abs(filepath.Join("testdata", file))
	require.NoError(t, err)

	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile("file://" + schemaPath)
	require.NoError(t, err)

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
