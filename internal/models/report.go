package models

import "math"

// AttendanceCount is the number of attendance rows per course and status.
type AttendanceCount struct {
	CourseID uint
	Status   AttendanceStatus
	Total    int64
}

// ParticipationTotal sums participation values per course.
type ParticipationTotal struct {
	CourseID uint
	Events   int64
	Total    float64
}

// ScoreTotal sums scores and their maxima per course.
type ScoreTotal struct {
	CourseID    uint
	Assessments int64
	Score       float64
	MaxScore    float64
}

// RosterRow lists an enrolled student with attendance tallies for one course.
type RosterRow struct {
	StudentID   uint
	StudentCode string
	FullName    string
	Present     int64
	Absent      int64
	Late        int64
	Excused     int64
}

// AttendanceRate returns the attended share (present or late) of total days as a
// percentage rounded to two decimals, or 0 when no days are recorded.
func AttendanceRate(present, late, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return roundPercent(float64(present+late) / float64(total) * 100)
}

// ScorePercentage returns score over maxScore as a percentage rounded to two
// decimals. ok is false when maxScore is not positive.
func ScorePercentage(score, maxScore float64) (float64, bool) {
	if maxScore <= 0 {
		return 0, false
	}
	return roundPercent(score / maxScore * 100), true
}

// Total counts the roster row's attendance days across all statuses.
func (r RosterRow) Total() int64 {
	return r.Present + r.Absent + r.Late + r.Excused
}

func roundPercent(value float64) float64 {
	return math.Round(value*100) / 100
}
