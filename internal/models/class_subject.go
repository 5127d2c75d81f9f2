package models

import "time"

// ClassSubject is an offering: the fact that a subject is taught within
// a class during a term. It is the sole authority a subject assignment
// may point at.
type ClassSubject struct {
	ID        int64     `db:"id" json:"id"`
	ClassID   int64     `db:"class_id" json:"class_id"`
	SubjectID int64     `db:"subject_id" json:"subject_id"`
	TermID    int64     `db:"term_id" json:"term_id"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// OfferedSubject annotates an offering with subject fields and, when a
// trainer id is supplied, with that trainer's assignment state.
// IsAssigned means the trainer holds an active assignment for this
// exact offering; IsAssignedElsewhere means the same subject is held
// under a different offering in the same term. The distinction matters
// because a (class, subject, term) triple, not a subject code, is the
// scheduling unit.
type OfferedSubject struct {
	ClassSubjectID      int64  `db:"class_subject_id" json:"class_subject_id"`
	ClassID             int64  `db:"class_id" json:"class_id"`
	SubjectID           int64  `db:"subject_id" json:"subject_id"`
	TermID              int64  `db:"term_id" json:"term_id"`
	OfferingActive      bool   `db:"offering_active" json:"offering_active"`
	SubjectCode         string `db:"subject_code" json:"subject_code"`
	SubjectName         string `db:"subject_name" json:"subject_name"`
	Department          string `db:"department" json:"department"`
	CanBeOnline         bool   `db:"can_be_online" json:"can_be_online"`
	IsAssigned          bool   `db:"is_assigned" json:"is_assigned"`
	IsAssignedElsewhere bool   `db:"is_assigned_elsewhere" json:"is_assigned_elsewhere"`
}
