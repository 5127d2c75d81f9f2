package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/models"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
)

const settingsCacheKey = "settings:timetable"

type settingsRepository interface {
	Get(ctx context.Context) (*models.TimetableSettings, error)
	Upsert(ctx context.Context, settings *models.TimetableSettings) error
}

type settingsCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// SettingsService owns the singleton timetable settings record. Reads
// go through a short-lived cache; missing rows resolve to the
// documented defaults so callers never branch on nil.
type SettingsService struct {
	repo      settingsRepository
	cache     settingsCache
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs a SettingsService. cache may be nil to
// bypass caching entirely.
func NewSettingsService(repo settingsRepository, cache settingsCache, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &SettingsService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger}
}

// Get returns the stored settings or the defaults when no row exists.
func (s *SettingsService) Get(ctx context.Context) (models.TimetableSettings, error) {
	if s.cache != nil {
		var cached models.TimetableSettings
		if err := s.cache.Get(ctx, settingsCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	stored, err := s.repo.Get(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.DefaultTimetableSettings(), nil
		}
		return models.TimetableSettings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, settingsCacheKey, stored, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache settings", zap.Error(err))
		}
	}
	return *stored, nil
}

// Update applies a partial settings update. Admin only; nil fields keep
// their stored value.
func (s *SettingsService) Update(ctx context.Context, req dto.UpdateTimetableSettingsRequest, caller *models.JWTClaims) (models.TimetableSettings, error) {
	if caller == nil {
		return models.TimetableSettings{}, appErrors.ErrUnauthorized
	}
	if !caller.HasSchedulingPrivilege() {
		return models.TimetableSettings{}, appErrors.Clone(appErrors.ErrForbidden, "only administrators may change timetable settings")
	}
	if err := s.validator.Struct(req); err != nil {
		return models.TimetableSettings{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}

	current, err := s.Get(ctx)
	if err != nil {
		return models.TimetableSettings{}, err
	}

	if req.AllowAdminAssignment != nil {
		current.AllowAdminAssignment = *req.AllowAdminAssignment
	}
	if req.BlockAllSubjectSelection != nil {
		current.BlockAllSubjectSelection = *req.BlockAllSubjectSelection
	}
	if req.GenerationDeadlineEnabled != nil {
		current.GenerationDeadlineEnabled = *req.GenerationDeadlineEnabled
	}
	if req.TimetableGenerationDeadline != nil {
		if *req.TimetableGenerationDeadline == "" {
			current.TimetableGenerationDeadline = nil
		} else {
			deadline, parseErr := time.Parse(time.RFC3339, *req.TimetableGenerationDeadline)
			if parseErr != nil {
				return models.TimetableSettings{}, appErrors.Clone(appErrors.ErrValidation, "timetable_generation_deadline must be RFC3339")
			}
			current.TimetableGenerationDeadline = &deadline
		}
	}
	current.UpdatedBy = &caller.UserID

	if err := s.repo.Upsert(ctx, &current); err != nil {
		return models.TimetableSettings{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save settings")
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, settingsCacheKey); err != nil {
			s.logger.Warn("failed to invalidate settings cache", zap.Error(err))
		}
	}
	s.logger.Info("timetable settings updated", zap.Int64("updated_by", caller.UserID))
	return current, nil
}

// CanMutate reports whether the caller may request scheduling changes
// at the given instant. Privileged callers are never subject to the
// deadline gate.
func (s *SettingsService) CanMutate(ctx context.Context, caller *models.JWTClaims, now time.Time) (bool, error) {
	if caller.HasSchedulingPrivilege() {
		return true, nil
	}
	cfg, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return !cfg.DeadlinePassed(now), nil
}
