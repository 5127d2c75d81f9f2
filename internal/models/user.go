package models

import "time"

// User is a reference record for a trainer or administrator. User
// management itself lives outside the engine; only the fields consulted
// by scheduling decisions are modelled here.
type User struct {
	ID                    int64     `db:"id" json:"id"`
	FullName              string    `db:"full_name" json:"full_name"`
	Role                  UserRole  `db:"role" json:"role"`
	IsActive              bool      `db:"is_active" json:"is_active"`
	BlockSubjectSelection bool      `db:"block_subject_selection" json:"block_subject_selection"`
	TimetableAdmin        bool      `db:"timetable_admin" json:"timetable_admin"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time `db:"updated_at" json:"updated_at"`
}

// CanBeScheduled reports whether the user may appear as the trainer on
// a timetable slot.
func (u *User) CanBeScheduled() bool {
	if u == nil {
		return false
	}
	return u.IsActive && (u.Role == RoleEmployee || u.Role == RoleAdmin)
}
