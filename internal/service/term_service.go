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

type termRepository interface {
	List(ctx context.Context, filter models.TermFilter) ([]models.Term, int, error)
	FindByID(ctx context.Context, id int64) (*models.Term, error)
	FindCurrent(ctx context.Context, today time.Time) (*models.Term, error)
	Create(ctx context.Context, term *models.Term) error
	Update(ctx context.Context, term *models.Term) error
	OverlapsActive(ctx context.Context, start, end time.Time, excludeID int64) (bool, error)
	ListTermClasses(ctx context.Context) ([]models.TermClassDetail, error)
}

// TermService answers "which term is current" and manages the term
// catalog.
type TermService struct {
	repo      termRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTermService constructs a TermService.
func NewTermService(repo termRepository, validate *validator.Validate, logger *zap.Logger) *TermService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TermService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Current returns the active term whose date range contains today.
func (s *TermService) Current(ctx context.Context) (*models.Term, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	term, err := s.repo.FindCurrent(ctx, today)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrNoCurrentTerm
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve current term")
	}
	return term, nil
}

// List returns terms matching the filter with pagination metadata.
func (s *TermService) List(ctx context.Context, filter models.TermFilter) ([]models.Term, *models.Pagination, error) {
	terms, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list terms")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return terms, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get loads a term by id.
func (s *TermService) Get(ctx context.Context, id int64) (*models.Term, error) {
	term, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get term")
	}
	return term, nil
}

// Create registers a new term. Active terms may not overlap.
func (s *TermService) Create(ctx context.Context, req dto.CreateTermRequest) (*models.Term, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid term payload")
	}
	start, end, err := parseTermDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	if active {
		overlaps, err := s.repo.OverlapsActive(ctx, start, end, 0)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check term overlap")
		}
		if overlaps {
			return nil, appErrors.Clone(appErrors.ErrConflict, "an active term already covers part of this range")
		}
	}

	term := &models.Term{Name: req.Name, StartDate: start, EndDate: end, IsActive: active}
	if err := s.repo.Create(ctx, term); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create term")
	}
	s.logger.Info("term created", zap.Int64("term_id", term.ID), zap.String("name", term.Name))
	return term, nil
}

// Update applies a partial update to a term.
func (s *TermService) Update(ctx context.Context, id int64, req dto.UpdateTermRequest) (*models.Term, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid term payload")
	}
	term, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		term.Name = req.Name
	}
	if req.StartDate != "" {
		start, parseErr := time.Parse("2006-01-02", req.StartDate)
		if parseErr != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must be YYYY-MM-DD")
		}
		term.StartDate = start
	}
	if req.EndDate != "" {
		end, parseErr := time.Parse("2006-01-02", req.EndDate)
		if parseErr != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be YYYY-MM-DD")
		}
		term.EndDate = end
	}
	if req.IsActive != nil {
		term.IsActive = *req.IsActive
	}
	if !term.StartDate.Before(term.EndDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date must precede end_date")
	}

	if term.IsActive {
		overlaps, err := s.repo.OverlapsActive(ctx, term.StartDate, term.EndDate, term.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check term overlap")
		}
		if overlaps {
			return nil, appErrors.Clone(appErrors.ErrConflict, "an active term already covers part of this range")
		}
	}

	if err := s.repo.Update(ctx, term); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update term")
	}
	return term, nil
}

// ListTermClassAssignments returns every term-class pair with names
// denormalized for planning views.
func (s *TermService) ListTermClassAssignments(ctx context.Context) ([]models.TermClassDetail, error) {
	pairs, err := s.repo.ListTermClasses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list term classes")
	}
	return pairs, nil
}

func parseTermDates(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "end_date must be YYYY-MM-DD")
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "start_date must precede end_date")
	}
	return start, end, nil
}
