package models

import "time"

// SlotStatus enumerates timetable slot states. Slots are cancelled,
// never deleted, once attendance may reference them.
type SlotStatus string

const (
	SlotActive    SlotStatus = "ACTIVE"
	SlotCancelled SlotStatus = "CANCELLED"
)

// TimetableSlot is a concrete placement of (class, subject, trainer,
// room, day-of-week, lesson period) within a term. DayOfWeek is 0-6,
// Sunday=0.
type TimetableSlot struct {
	ID             int64      `db:"id" json:"id"`
	ClassID        int64      `db:"class_id" json:"class_id"`
	SubjectID      int64      `db:"subject_id" json:"subject_id"`
	EmployeeID     int64      `db:"employee_id" json:"employee_id"`
	RoomID         int64      `db:"room_id" json:"room_id"`
	LessonPeriodID int64      `db:"lesson_period_id" json:"lesson_period_id"`
	DayOfWeek      int        `db:"day_of_week" json:"day_of_week"`
	TermID         int64      `db:"term_id" json:"term_id"`
	Status         SlotStatus `db:"status" json:"status"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// SlotSummary carries the denormalized names needed for a readable
// collision message.
type SlotSummary struct {
	SlotID         int64  `db:"slot_id" json:"slot_id"`
	ClassID        int64  `db:"class_id" json:"class_id"`
	ClassName      string `db:"class_name" json:"class_name"`
	SubjectID      int64  `db:"subject_id" json:"subject_id"`
	SubjectName    string `db:"subject_name" json:"subject_name"`
	EmployeeID     int64  `db:"employee_id" json:"employee_id"`
	TrainerName    string `db:"trainer_name" json:"trainer_name"`
	RoomID         int64  `db:"room_id" json:"room_id"`
	RoomName       string `db:"room_name" json:"room_name"`
	DayOfWeek      int    `db:"day_of_week" json:"day_of_week"`
	LessonPeriodID int64  `db:"lesson_period_id" json:"lesson_period_id"`
	PeriodName     string `db:"period_name" json:"period_name"`
	TermID         int64  `db:"term_id" json:"term_id"`
}

// AvailabilityResult answers an occupancy check.
type AvailabilityResult struct {
	IsAvailable bool         `json:"is_available"`
	Conflict    *SlotSummary `json:"conflict,omitempty"`
}

// SlotConflictError is returned when a placement collides with an
// existing non-cancelled slot.
type SlotConflictError struct {
	Dimension string      `json:"dimension"`
	Message   string      `json:"message"`
	Conflict  SlotSummary `json:"conflict"`
}

// Error implements the error interface for conflict errors.
func (e *SlotConflictError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}
