package models

import "time"

// LessonPeriod is a named clock-time interval forming the scheduling
// grid's time axis. Times are "HH:MM" strings; active periods never
// overlap.
type LessonPeriod struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	StartTime       string    `db:"start_time" json:"start_time"`
	EndTime         string    `db:"end_time" json:"end_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	IsActive        bool      `db:"is_active" json:"is_active"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
