package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/scheduling-api/internal/models"
)

// TrainerAssignmentRepository handles both the coarse class assignments
// and the fine subject assignments of trainers.
type TrainerAssignmentRepository struct {
	db *sqlx.DB
}

// NewTrainerAssignmentRepository creates an assignment repository.
func NewTrainerAssignmentRepository(db *sqlx.DB) *TrainerAssignmentRepository {
	return &TrainerAssignmentRepository{db: db}
}

// FindLatestSubjectAssignment returns the newest row for the
// (trainer, subject, term) key regardless of active flag. The engine
// keeps at most one row per key and toggles it in place.
func (r *TrainerAssignmentRepository) FindLatestSubjectAssignment(ctx context.Context, trainerID, subjectID, termID int64) (*models.TrainerSubjectAssignment, error) {
	const query = `SELECT id, trainer_id, subject_id, term_id, class_subject_id, is_active, created_at, updated_at
FROM trainer_subject_assignments
WHERE trainer_id = $1 AND subject_id = $2 AND term_id = $3
ORDER BY id DESC LIMIT 1`
	var tsa models.TrainerSubjectAssignment
	if err := r.db.GetContext(ctx, &tsa, query, trainerID, subjectID, termID); err != nil {
		return nil, err
	}
	return &tsa, nil
}

// FindHeldSubjectAssignment returns the newest row for the
// (trainer, subject, term) key joined with its holding class, so a
// rejected activation can name the class in one query.
func (r *TrainerAssignmentRepository) FindHeldSubjectAssignment(ctx context.Context, trainerID, subjectID, termID int64) (*models.SubjectAssignmentDetail, error) {
	const query = `
SELECT tsa.id, tsa.trainer_id, tsa.subject_id, tsa.term_id, tsa.class_subject_id, tsa.is_active, tsa.created_at, tsa.updated_at,
       cs.class_id, c.name AS class_name
FROM trainer_subject_assignments tsa
JOIN class_subjects cs ON cs.id = tsa.class_subject_id
JOIN classes c ON c.id = cs.class_id
WHERE tsa.trainer_id = $1 AND tsa.subject_id = $2 AND tsa.term_id = $3
ORDER BY tsa.id DESC LIMIT 1`
	var detail models.SubjectAssignmentDetail
	if err := r.db.GetContext(ctx, &detail, query, trainerID, subjectID, termID); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ListActiveSubjectAssignments returns the trainer's active subject
// assignments across all terms, newest term first.
func (r *TrainerAssignmentRepository) ListActiveSubjectAssignments(ctx context.Context, trainerID int64) ([]models.SubjectAssignmentDetail, error) {
	const query = `
SELECT tsa.id, tsa.trainer_id, tsa.subject_id, tsa.term_id, tsa.class_subject_id, tsa.is_active, tsa.created_at, tsa.updated_at,
       cs.class_id, c.name AS class_name
FROM trainer_subject_assignments tsa
JOIN class_subjects cs ON cs.id = tsa.class_subject_id
JOIN classes c ON c.id = cs.class_id
WHERE tsa.trainer_id = $1 AND tsa.is_active = TRUE
ORDER BY tsa.term_id DESC, tsa.id DESC`
	var details []models.SubjectAssignmentDetail
	if err := r.db.SelectContext(ctx, &details, query, trainerID); err != nil {
		return nil, fmt.Errorf("list subject assignments: %w", err)
	}
	return details, nil
}

// CreateSubjectAssignment inserts a new subject assignment row.
func (r *TrainerAssignmentRepository) CreateSubjectAssignment(ctx context.Context, tsa *models.TrainerSubjectAssignment) error {
	now := time.Now().UTC()
	tsa.CreatedAt = now
	tsa.UpdatedAt = now
	const query = `INSERT INTO trainer_subject_assignments (trainer_id, subject_id, term_id, class_subject_id, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, tsa.TrainerID, tsa.SubjectID, tsa.TermID, tsa.ClassSubjectID, tsa.IsActive, tsa.CreatedAt, tsa.UpdatedAt).Scan(&tsa.ID); err != nil {
		return fmt.Errorf("create subject assignment: %w", err)
	}
	return nil
}

// UpdateSubjectAssignment repoints or toggles an existing row in place.
func (r *TrainerAssignmentRepository) UpdateSubjectAssignment(ctx context.Context, tsa *models.TrainerSubjectAssignment) error {
	tsa.UpdatedAt = time.Now().UTC()
	const query = `UPDATE trainer_subject_assignments SET class_subject_id = :class_subject_id, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, tsa); err != nil {
		return fmt.Errorf("update subject assignment: %w", err)
	}
	return nil
}

// FindActiveClassAssignment loads the active class assignment for a
// (trainer, class) pair.
func (r *TrainerAssignmentRepository) FindActiveClassAssignment(ctx context.Context, trainerID, classID int64) (*models.TrainerClassAssignment, error) {
	const query = `SELECT id, trainer_id, class_id, is_active, created_at, updated_at
FROM trainer_class_assignments
WHERE trainer_id = $1 AND class_id = $2 AND is_active = TRUE
ORDER BY id DESC LIMIT 1`
	var tca models.TrainerClassAssignment
	if err := r.db.GetContext(ctx, &tca, query, trainerID, classID); err != nil {
		return nil, err
	}
	return &tca, nil
}

// CreateClassAssignment inserts a coarse class assignment.
func (r *TrainerAssignmentRepository) CreateClassAssignment(ctx context.Context, tca *models.TrainerClassAssignment) error {
	now := time.Now().UTC()
	tca.CreatedAt = now
	tca.UpdatedAt = now
	const query = `INSERT INTO trainer_class_assignments (trainer_id, class_id, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, tca.TrainerID, tca.ClassID, tca.IsActive, tca.CreatedAt, tca.UpdatedAt).Scan(&tca.ID); err != nil {
		return fmt.Errorf("create class assignment: %w", err)
	}
	return nil
}

// DeactivateClassAssignment retires the coarse link without deleting,
// so attendance keyed on it survives.
func (r *TrainerAssignmentRepository) DeactivateClassAssignment(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE trainer_class_assignments SET is_active = FALSE, updated_at = $2 WHERE id = $1 AND is_active = TRUE`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate class assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deactivated assignment rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountAttendance counts attendance rows recorded by the trainer for
// the class, reported back when the link is removed.
func (r *TrainerAssignmentRepository) CountAttendance(ctx context.Context, trainerID, classID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM attendance_records WHERE trainer_id = $1 AND class_id = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, trainerID, classID); err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	return count, nil
}
