package models

import "time"

// Term models a bounded academic period within which offerings and
// assignments are scoped.
type Term struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TermFilter defines filters supported by term list endpoints.
type TermFilter struct {
	IsActive  *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// TermClass links a class to a term.
type TermClass struct {
	ID       int64 `db:"id" json:"id"`
	TermID   int64 `db:"term_id" json:"term_id"`
	ClassID  int64 `db:"class_id" json:"class_id"`
	IsActive bool  `db:"is_active" json:"is_active"`
}

// TermClassDetail is the denormalized view used for term-level conflict
// planning.
type TermClassDetail struct {
	TermClass
	TermName      string    `db:"term_name" json:"term_name"`
	TermStartDate time.Time `db:"term_start_date" json:"term_start_date"`
	TermEndDate   time.Time `db:"term_end_date" json:"term_end_date"`
	ClassName     string    `db:"class_name" json:"class_name"`
	ClassCode     string    `db:"class_code" json:"class_code"`
}
