package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campushub/scheduling-api/internal/models"
)

// settingsRowID pins the singleton row.
const settingsRowID = 1

// SettingsRepository handles the single timetable settings row.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a settings repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads the singleton row. Returns sql.ErrNoRows when no settings
// have been written yet; callers fall back to defaults.
func (r *SettingsRepository) Get(ctx context.Context) (*models.TimetableSettings, error) {
	const query = `SELECT allow_admin_assignment, block_all_subject_selection, generation_deadline_enabled, timetable_generation_deadline, updated_by, updated_at
FROM timetable_settings WHERE id = $1`
	var settings models.TimetableSettings
	if err := r.db.GetContext(ctx, &settings, query, settingsRowID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert writes the singleton row, creating it on first save.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.TimetableSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	const query = `
INSERT INTO timetable_settings (id, allow_admin_assignment, block_all_subject_selection, generation_deadline_enabled, timetable_generation_deadline, updated_by, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
  allow_admin_assignment = EXCLUDED.allow_admin_assignment,
  block_all_subject_selection = EXCLUDED.block_all_subject_selection,
  generation_deadline_enabled = EXCLUDED.generation_deadline_enabled,
  timetable_generation_deadline = EXCLUDED.timetable_generation_deadline,
  updated_by = EXCLUDED.updated_by,
  updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		settingsRowID,
		settings.AllowAdminAssignment,
		settings.BlockAllSubjectSelection,
		settings.GenerationDeadlineEnabled,
		settings.TimetableGenerationDeadline,
		settings.UpdatedBy,
		settings.UpdatedAt,
	)
	return err
}
