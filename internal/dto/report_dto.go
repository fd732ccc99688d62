package dto

import "time"

// StudentReportResponse aggregates a student's records per enrolled course.
type StudentReportResponse struct {
	Student     StudentResponse `json:"student"`
	Courses     []CourseReport  `json:"courses"`
	GeneratedAt time.Time       `json:"generated_at"`
	CacheHit    bool            `json:"cache_hit"`
}

// CourseReport summarises attendance, participation and scores in one course.
type CourseReport struct {
	Course              CourseResponse   `json:"course"`
	Attendance          AttendanceTotals `json:"attendance"`
	AttendanceRate      float64          `json:"attendance_rate"`
	ParticipationEvents int64            `json:"participation_events"`
	ParticipationTotal  float64          `json:"participation_total"`
	Assessments         int64            `json:"assessments"`
	ScorePercentage     *float64         `json:"score_percentage"`
}

// AttendanceTotals counts attendance rows by status.
type AttendanceTotals struct {
	Present int64 `json:"present"`
	Absent  int64 `json:"absent"`
	Late    int64 `json:"late"`
	Excused int64 `json:"excused"`
	Total   int64 `json:"total"`
}
