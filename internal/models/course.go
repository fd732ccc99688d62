package models

import "time"

// Course is offered once per term; the (code, term) pair is unique.
type Course struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:50;not null;uniqueIndex:idx_courses_code_term" json:"code"`
	Name      string    `gorm:"size:150;not null" json:"name"`
	Term      string    `gorm:"size:50;not null;uniqueIndex:idx_courses_code_term;index" json:"term"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
