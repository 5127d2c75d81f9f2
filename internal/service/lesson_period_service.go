package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/models"
	"github.com/campushub/scheduling-api/internal/repository"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
)

type lessonPeriodRepository interface {
	List(ctx context.Context, onlyActive bool) ([]models.LessonPeriod, error)
	FindByID(ctx context.Context, id int64) (*models.LessonPeriod, error)
	FindOverlapping(ctx context.Context, startTime, endTime string, excludeID int64) (*models.LessonPeriod, error)
	Create(ctx context.Context, period *models.LessonPeriod) error
	CountSlots(ctx context.Context, id int64) (int, error)
	Deactivate(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// LessonPeriodService manages the time axis of the scheduling grid.
// Active periods never overlap.
type LessonPeriodService struct {
	repo      lessonPeriodRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLessonPeriodService constructs a LessonPeriodService.
func NewLessonPeriodService(repo lessonPeriodRepository, validate *validator.Validate, logger *zap.Logger) *LessonPeriodService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonPeriodService{repo: repo, validator: validate, logger: logger}
}

// List returns lesson periods ordered by start time.
func (s *LessonPeriodService) List(ctx context.Context, onlyActive bool) ([]models.LessonPeriod, error) {
	periods, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list lesson periods")
	}
	return periods, nil
}

// Get loads a period by id.
func (s *LessonPeriodService) Get(ctx context.Context, id int64) (*models.LessonPeriod, error) {
	period, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "lesson period not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get lesson period")
	}
	return period, nil
}

// Create registers a new period after rejecting inverted intervals and
// any overlap with an active period.
func (s *LessonPeriodService) Create(ctx context.Context, req dto.CreateLessonPeriodRequest) (*models.LessonPeriod, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid lesson period payload")
	}
	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must be HH:MM")
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must be HH:MM")
	}
	if !start.Before(end) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must precede end_time")
	}

	overlap, err := s.repo.FindOverlapping(ctx, req.StartTime, req.EndTime, 0)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check period overlap")
	}
	if overlap != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("overlaps active period %q (%s-%s)", overlap.Name, overlap.StartTime, overlap.EndTime))
	}

	period := &models.LessonPeriod{
		Name:            req.Name,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: int(end.Sub(start).Minutes()),
		IsActive:        true,
	}
	if err := s.repo.Create(ctx, period); err != nil {
		// The race loser against a concurrent create lands here via the
		// storage-level exclusion constraint.
		if err == repository.ErrPeriodOverlap {
			return nil, appErrors.Clone(appErrors.ErrConflict, "overlaps an active period")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create lesson period")
	}
	s.logger.Info("lesson period created", zap.Int64("period_id", period.ID), zap.String("name", period.Name))
	return period, nil
}

// Remove hard-deletes an unreferenced period and deactivates one that
// timetable slots still point at.
func (s *LessonPeriodService) Remove(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	slots, err := s.repo.CountSlots(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count period slots")
	}
	if slots > 0 {
		if err := s.repo.Deactivate(ctx, id); err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "lesson period not found")
			}
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate lesson period")
		}
		s.logger.Info("lesson period deactivated", zap.Int64("period_id", id), zap.Int("slots", slots))
		return nil
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "lesson period not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete lesson period")
	}
	s.logger.Info("lesson period deleted", zap.Int64("period_id", id))
	return nil
}
