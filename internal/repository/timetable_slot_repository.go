package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/scheduling-api/internal/models"
)

// OccupancyResource names a slot dimension that can be checked for
// collisions. Values map to whitelisted column names, never caller
// input.
type OccupancyResource string

const (
	ResourceTrainer OccupancyResource = "trainer"
	ResourceRoom    OccupancyResource = "room"
)

var occupancyColumns = map[OccupancyResource]string{
	ResourceTrainer: "employee_id",
	ResourceRoom:    "room_id",
}

// TimetableSlotRepository handles persistence for timetable slots and
// the occupancy lookups behind conflict checking.
type TimetableSlotRepository struct {
	db *sqlx.DB
}

// NewTimetableSlotRepository creates a slot repository.
func NewTimetableSlotRepository(db *sqlx.DB) *TimetableSlotRepository {
	return &TimetableSlotRepository{db: db}
}

const slotSummarySelect = `
SELECT ts.id AS slot_id, ts.class_id, c.name AS class_name,
       ts.subject_id, s.name AS subject_name,
       ts.employee_id, u.full_name AS trainer_name,
       ts.room_id, r.name AS room_name,
       ts.day_of_week, ts.lesson_period_id, lp.name AS period_name, ts.term_id
FROM timetable_slots ts
JOIN classes c ON c.id = ts.class_id
JOIN subjects s ON s.id = ts.subject_id
JOIN users u ON u.id = ts.employee_id
JOIN rooms r ON r.id = ts.room_id
JOIN lesson_periods lp ON lp.id = ts.lesson_period_id`

// FindOccupied returns the non-cancelled slot holding the resource at
// (term, day, period), if any. excludeSlotID skips a slot being moved.
func (r *TimetableSlotRepository) FindOccupied(ctx context.Context, resource OccupancyResource, resourceID, termID int64, dayOfWeek int, lessonPeriodID, excludeSlotID int64) (*models.SlotSummary, error) {
	column, ok := occupancyColumns[resource]
	if !ok {
		return nil, fmt.Errorf("unknown occupancy resource %q", resource)
	}

	query := slotSummarySelect + fmt.Sprintf(`
WHERE ts.%s = $1 AND ts.term_id = $2 AND ts.day_of_week = $3 AND ts.lesson_period_id = $4
  AND ts.status <> 'CANCELLED'`, column)
	args := []interface{}{resourceID, termID, dayOfWeek, lessonPeriodID}
	if excludeSlotID > 0 {
		query += " AND ts.id <> $5"
		args = append(args, excludeSlotID)
	}
	query += " ORDER BY ts.id ASC LIMIT 1"

	var summary models.SlotSummary
	if err := r.db.GetContext(ctx, &summary, query, args...); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListByTerm returns the term's non-cancelled slots ordered for display.
func (r *TimetableSlotRepository) ListByTerm(ctx context.Context, termID int64) ([]models.SlotSummary, error) {
	query := slotSummarySelect + `
WHERE ts.term_id = $1 AND ts.status <> 'CANCELLED'
ORDER BY ts.day_of_week ASC, lp.start_time ASC, c.name ASC`
	var slots []models.SlotSummary
	if err := r.db.SelectContext(ctx, &slots, query, termID); err != nil {
		return nil, fmt.Errorf("list term slots: %w", err)
	}
	return slots, nil
}

// ListByClass returns the class's non-cancelled slots in a term.
func (r *TimetableSlotRepository) ListByClass(ctx context.Context, classID, termID int64) ([]models.SlotSummary, error) {
	query := slotSummarySelect + `
WHERE ts.class_id = $1 AND ts.term_id = $2 AND ts.status <> 'CANCELLED'
ORDER BY ts.day_of_week ASC, lp.start_time ASC`
	var slots []models.SlotSummary
	if err := r.db.SelectContext(ctx, &slots, query, classID, termID); err != nil {
		return nil, fmt.Errorf("list class slots: %w", err)
	}
	return slots, nil
}

// FindByID loads a slot by id.
func (r *TimetableSlotRepository) FindByID(ctx context.Context, id int64) (*models.TimetableSlot, error) {
	const query = `SELECT id, class_id, subject_id, employee_id, room_id, lesson_period_id, day_of_week, term_id, status, created_at, updated_at
FROM timetable_slots WHERE id = $1`
	var slot models.TimetableSlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Create inserts a new slot.
func (r *TimetableSlotRepository) Create(ctx context.Context, slot *models.TimetableSlot) error {
	now := time.Now().UTC()
	slot.CreatedAt = now
	slot.UpdatedAt = now
	if slot.Status == "" {
		slot.Status = models.SlotActive
	}
	const query = `INSERT INTO timetable_slots (class_id, subject_id, employee_id, room_id, lesson_period_id, day_of_week, term_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, slot.ClassID, slot.SubjectID, slot.EmployeeID, slot.RoomID, slot.LessonPeriodID, slot.DayOfWeek, slot.TermID, slot.Status, slot.CreatedAt, slot.UpdatedAt).Scan(&slot.ID); err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}

// Cancel marks a slot cancelled. Cancelled slots release their
// occupancy but keep their row for history.
func (r *TimetableSlotRepository) Cancel(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE timetable_slots SET status = 'CANCELLED', updated_at = $2 WHERE id = $1 AND status <> 'CANCELLED'`, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cancel slot: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check cancelled slot rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
