package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/campushub/scheduling-api/internal/models"
)

// ErrPeriodOverlap is returned when the exclusion constraint on active
// lesson periods rejects a write that slipped past the service check.
var ErrPeriodOverlap = errors.New("lesson period overlaps an active period")

// LessonPeriodRepository handles persistence for lesson periods.
type LessonPeriodRepository struct {
	db *sqlx.DB
}

// NewLessonPeriodRepository creates a lesson period repository.
func NewLessonPeriodRepository(db *sqlx.DB) *LessonPeriodRepository {
	return &LessonPeriodRepository{db: db}
}

// List returns periods ordered by start time.
func (r *LessonPeriodRepository) List(ctx context.Context, onlyActive bool) ([]models.LessonPeriod, error) {
	query := `SELECT id, name, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time, duration_minutes, is_active, created_at, updated_at FROM lesson_periods`
	if onlyActive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY start_time ASC`
	var periods []models.LessonPeriod
	if err := r.db.SelectContext(ctx, &periods, query); err != nil {
		return nil, fmt.Errorf("list lesson periods: %w", err)
	}
	return periods, nil
}

// FindByID loads a period by id.
func (r *LessonPeriodRepository) FindByID(ctx context.Context, id int64) (*models.LessonPeriod, error) {
	const query = `SELECT id, name, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time, duration_minutes, is_active, created_at, updated_at FROM lesson_periods WHERE id = $1`
	var period models.LessonPeriod
	if err := r.db.GetContext(ctx, &period, query, id); err != nil {
		return nil, err
	}
	return &period, nil
}

// FindOverlapping returns the first active period that overlaps the
// given interval, if any.
func (r *LessonPeriodRepository) FindOverlapping(ctx context.Context, startTime, endTime string, excludeID int64) (*models.LessonPeriod, error) {
	base := `SELECT id, name, to_char(start_time, 'HH24:MI') AS start_time, to_char(end_time, 'HH24:MI') AS end_time, duration_minutes, is_active, created_at, updated_at
FROM lesson_periods WHERE is_active = TRUE AND start_time < $2::time AND end_time > $1::time`
	args := []interface{}{startTime, endTime}
	if excludeID > 0 {
		base += " AND id <> $3"
		args = append(args, excludeID)
	}
	var period models.LessonPeriod
	if err := r.db.GetContext(ctx, &period, base+" LIMIT 1", args...); err != nil {
		return nil, err
	}
	return &period, nil
}

// Create inserts a new period.
func (r *LessonPeriodRepository) Create(ctx context.Context, period *models.LessonPeriod) error {
	now := time.Now().UTC()
	period.CreatedAt = now
	period.UpdatedAt = now

	const query = `INSERT INTO lesson_periods (name, start_time, end_time, duration_minutes, is_active, created_at, updated_at)
VALUES ($1, $2::time, $3::time, $4, $5, $6, $7) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, period.Name, period.StartTime, period.EndTime, period.DurationMinutes, period.IsActive, period.CreatedAt, period.UpdatedAt).Scan(&period.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23P01" {
			return ErrPeriodOverlap
		}
		return fmt.Errorf("create lesson period: %w", err)
	}
	return nil
}

// CountSlots returns the number of timetable slots referencing the
// period, any status.
func (r *LessonPeriodRepository) CountSlots(ctx context.Context, id int64) (int, error) {
	const query = `SELECT COUNT(*) FROM timetable_slots WHERE lesson_period_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count period slots: %w", err)
	}
	return count, nil
}

// Deactivate soft-deletes a period.
func (r *LessonPeriodRepository) Deactivate(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE lesson_periods SET is_active = FALSE, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate lesson period: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deactivated period rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an unreferenced period permanently.
func (r *LessonPeriodRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM lesson_periods WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson period: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deleted period rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
