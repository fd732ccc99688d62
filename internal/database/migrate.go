package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/noah-isme/edu-records-api/internal/models"
)

// Migrate creates or updates the six record tables and their constraints.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Student{},
		&models.Course{},
		&models.Enrollment{},
		&models.AttendanceRecord{},
		&models.ParticipationRecord{},
		&models.ScoreRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	return nil
}
