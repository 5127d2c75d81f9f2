package models

import "time"

// TimetableSettings is the singleton configuration record consulted by
// the assignment engine and scheduler. The row is created lazily on
// first write; reads fall back to DefaultTimetableSettings so callers
// never branch on a missing row.
type TimetableSettings struct {
	AllowAdminAssignment        bool       `db:"allow_admin_assignment" json:"allow_admin_assignment"`
	BlockAllSubjectSelection    bool       `db:"block_all_subject_selection" json:"block_all_subject_selection"`
	GenerationDeadlineEnabled   bool       `db:"generation_deadline_enabled" json:"generation_deadline_enabled"`
	TimetableGenerationDeadline *time.Time `db:"timetable_generation_deadline" json:"timetable_generation_deadline,omitempty"`
	UpdatedBy                   *int64     `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt                   time.Time  `db:"updated_at" json:"updated_at"`
}

// DefaultTimetableSettings is the documented default object returned
// when no settings row exists yet.
func DefaultTimetableSettings() TimetableSettings {
	return TimetableSettings{
		AllowAdminAssignment:     false,
		BlockAllSubjectSelection: false,
	}
}

// DeadlinePassed reports whether the generation deadline gate is closed
// at the given instant. Privileged callers are never subject to it.
func (s TimetableSettings) DeadlinePassed(now time.Time) bool {
	if !s.GenerationDeadlineEnabled || s.TimetableGenerationDeadline == nil {
		return false
	}
	return now.After(*s.TimetableGenerationDeadline)
}
