package models

import "time"

// TrainerClassAssignment is the coarse trainer-to-class link. Removal
// deactivates rather than deletes so attendance history stays intact.
type TrainerClassAssignment struct {
	ID        int64     `db:"id" json:"id"`
	TrainerID int64     `db:"trainer_id" json:"trainer_id"`
	ClassID   int64     `db:"class_id" json:"class_id"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TrainerSubjectAssignment is the fine trainer-to-offering link; the
// one-subject-per-trainer-per-term rule applies to it. At most one row
// exists per (trainer, subject, term) and is updated in place.
type TrainerSubjectAssignment struct {
	ID             int64     `db:"id" json:"id"`
	TrainerID      int64     `db:"trainer_id" json:"trainer_id"`
	SubjectID      int64     `db:"subject_id" json:"subject_id"`
	TermID         int64     `db:"term_id" json:"term_id"`
	ClassSubjectID int64     `db:"class_subject_id" json:"class_subject_id"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectAssignmentDetail adds the holding class for conflict messages.
type SubjectAssignmentDetail struct {
	TrainerSubjectAssignment
	ClassID   int64  `db:"class_id" json:"class_id"`
	ClassName string `db:"class_name" json:"class_name"`
}

// AssignmentAction reports what a set-assignment request did.
type AssignmentAction string

const (
	AssignmentCreated AssignmentAction = "created"
	AssignmentUpdated AssignmentAction = "updated"
	AssignmentNone    AssignmentAction = "none"
)

// SubjectAssignmentResult is the response contract for set-assignment.
type SubjectAssignmentResult struct {
	Action         AssignmentAction `json:"action"`
	Message        string           `json:"message"`
	TrainerID      int64            `json:"trainer_id"`
	SubjectID      int64            `json:"subject_id"`
	TermID         int64            `json:"term_id"`
	ClassSubjectID int64            `json:"class_subject_id"`
	IsActive       bool             `json:"is_active"`
}

// RemovedClassAssignment summarises a class-assignment removal,
// including how many attendance rows were preserved.
type RemovedClassAssignment struct {
	TrainerID           int64  `json:"trainer_id"`
	ClassID             int64  `json:"class_id"`
	ClassName           string `json:"class_name"`
	PreservedAttendance int    `json:"preserved_attendance"`
}
