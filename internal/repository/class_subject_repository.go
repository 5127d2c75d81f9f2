package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/scheduling-api/internal/models"
)

// ClassSubjectRepository handles persistence for offerings, the
// class-subject-term triples the assignment engine points at.
type ClassSubjectRepository struct {
	db *sqlx.DB
}

// NewClassSubjectRepository creates an offering repository.
func NewClassSubjectRepository(db *sqlx.DB) *ClassSubjectRepository {
	return &ClassSubjectRepository{db: db}
}

// FindByID loads an offering by id.
func (r *ClassSubjectRepository) FindByID(ctx context.Context, id int64) (*models.ClassSubject, error) {
	const query = `SELECT id, class_id, subject_id, term_id, is_active, created_at FROM class_subjects WHERE id = $1`
	var cs models.ClassSubject
	if err := r.db.GetContext(ctx, &cs, query, id); err != nil {
		return nil, err
	}
	return &cs, nil
}

// ExistsActive reports whether the triple already has a live offering.
func (r *ClassSubjectRepository) ExistsActive(ctx context.Context, classID, subjectID, termID int64) (bool, error) {
	const query = `SELECT 1 FROM class_subjects WHERE class_id = $1 AND subject_id = $2 AND term_id = $3 AND is_active = TRUE LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, classID, subjectID, termID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check offering: %w", err)
	}
	return true, nil
}

// Create inserts a new offering row.
func (r *ClassSubjectRepository) Create(ctx context.Context, cs *models.ClassSubject) error {
	cs.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO class_subjects (class_id, subject_id, term_id, is_active, created_at)
VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, cs.ClassID, cs.SubjectID, cs.TermID, cs.IsActive, cs.CreatedAt).Scan(&cs.ID); err != nil {
		return fmt.Errorf("create offering: %w", err)
	}
	return nil
}

// ListAvailableSubjects returns active subjects not linked to the class
// by any offering row, past or present, ordered by name.
func (r *ClassSubjectRepository) ListAvailableSubjects(ctx context.Context, classID int64) ([]models.Subject, error) {
	const query = `
SELECT s.id, s.code, s.name, s.department, s.can_be_online, s.is_active, s.created_at, s.updated_at
FROM subjects s
WHERE s.is_active = TRUE
  AND s.id NOT IN (
    SELECT cs.subject_id FROM class_subjects cs WHERE cs.class_id = $1
  )
ORDER BY s.name ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, classID); err != nil {
		return nil, fmt.Errorf("list available subjects: %w", err)
	}
	return subjects, nil
}

// ListOffered returns the class's offerings, optionally filtered to a
// term, annotated with the given trainer's assignment state. The
// elsewhere flag is scoped to each offering's own term because a
// (class, subject, term) triple, not a subject code, is the scheduling
// unit. trainerID may be zero, in which case both flags come back false.
func (r *ClassSubjectRepository) ListOffered(ctx context.Context, classID int64, termID, trainerID int64) ([]models.OfferedSubject, error) {
	query := `
SELECT cs.id AS class_subject_id, cs.class_id, cs.subject_id, cs.term_id, cs.is_active AS offering_active,
       s.code AS subject_code, s.name AS subject_name, s.department, s.can_be_online,
       EXISTS (
         SELECT 1 FROM trainer_subject_assignments tsa
         WHERE tsa.trainer_id = $2 AND tsa.class_subject_id = cs.id AND tsa.is_active = TRUE
       ) AS is_assigned,
       EXISTS (
         SELECT 1 FROM trainer_subject_assignments tsa
         WHERE tsa.trainer_id = $2 AND tsa.subject_id = cs.subject_id AND tsa.term_id = cs.term_id
           AND tsa.class_subject_id <> cs.id AND tsa.is_active = TRUE
       ) AS is_assigned_elsewhere
FROM class_subjects cs
JOIN subjects s ON s.id = cs.subject_id
WHERE cs.class_id = $1`
	args := []interface{}{classID, trainerID}
	if termID > 0 {
		query += " AND cs.term_id = $3"
		args = append(args, termID)
	}
	query += " ORDER BY s.name ASC"

	var offered []models.OfferedSubject
	if err := r.db.SelectContext(ctx, &offered, query, args...); err != nil {
		return nil, fmt.Errorf("list offered subjects: %w", err)
	}
	return offered, nil
}

// RemoveCascade deactivates every subject assignment pointing at the
// offering, deactivates the offering, then deletes it, all in one
// transaction. Returns sql.ErrNoRows when the offering does not exist.
func (r *ClassSubjectRepository) RemoveCascade(ctx context.Context, classSubjectID int64) (deactivatedAssignments int, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin remove offering: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()

	result, err := tx.ExecContext(ctx, `UPDATE trainer_subject_assignments SET is_active = FALSE, updated_at = $2 WHERE class_subject_id = $1 AND is_active = TRUE`, classSubjectID, now)
	if err != nil {
		return 0, fmt.Errorf("deactivate offering assignments: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deactivated assignments: %w", err)
	}
	deactivatedAssignments = int(affected)

	if _, err = tx.ExecContext(ctx, `UPDATE class_subjects SET is_active = FALSE WHERE id = $1`, classSubjectID); err != nil {
		return 0, fmt.Errorf("deactivate offering: %w", err)
	}

	result, err = tx.ExecContext(ctx, `DELETE FROM class_subjects WHERE id = $1`, classSubjectID)
	if err != nil {
		return 0, fmt.Errorf("delete offering: %w", err)
	}
	affected, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted offerings: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit remove offering: %w", err)
	}
	return deactivatedAssignments, nil
}
