package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/edu-records-api/internal/database"
	"github.com/noah-isme/edu-records-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
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

func seedStudent(t *testing.T, db *gorm.DB, code string) models.Student {
	t.Helper()
	student := models.Student{Code: code, FullName: "Student " + code}
	require.NoError(t, db.Create(&student).Error)
	return student
}

func seedCourse(t *testing.T, db *gorm.DB, code, term string) models.Course {
	t.Helper()
	course := models.Course{Code: code, Name: "Course " + code, Term: term}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func seedEnrollment(t *testing.T, db *gorm.DB, studentID, courseID uint) models.Enrollment {
	t.Helper()
	enrollment := models.Enrollment{StudentID: studentID, CourseID: courseID}
	require.NoError(t, db.Omit("Student", "Course").Create(&enrollment).Error)
	return enrollment
}

func day(t *testing.T, value string) datatypes.Date {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	require.NoError(t, err)
	return datatypes.Date(parsed)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var total int64
	require.NoError(t, db.Model(model).Count(&total).Error)
	return total
}
