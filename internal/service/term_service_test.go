package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/models"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
)

type termRepoStub struct {
	current  *models.Term
	overlaps bool
	created  []*models.Term
	lastDay  time.Time
}

func (s *termRepoStub) List(ctx context.Context, filter models.TermFilter) ([]models.Term, int, error) {
	return nil, 0, nil
}

func (s *termRepoStub) FindByID(ctx context.Context, id int64) (*models.Term, error) {
	return nil, sql.ErrNoRows
}

func (s *termRepoStub) FindCurrent(ctx context.Context, today time.Time) (*models.Term, error) {
	s.lastDay = today
	if s.current == nil {
		return nil, sql.ErrNoRows
	}
	cp := *s.current
	return &cp, nil
}

func (s *termRepoStub) Create(ctx context.Context, term *models.Term) error {
	term.ID = 2
	s.created = append(s.created, term)
	return nil
}

func (s *termRepoStub) Update(ctx context.Context, term *models.Term) error { return nil }

func (s *termRepoStub) OverlapsActive(ctx context.Context, start, end time.Time, excludeID int64) (bool, error) {
	return s.overlaps, nil
}

func (s *termRepoStub) ListTermClasses(ctx context.Context) ([]models.TermClassDetail, error) {
	return nil, nil
}

func TestTermCurrent(t *testing.T) {
	repo := &termRepoStub{current: &models.Term{ID: 2, Name: "2026/2027 Odd", IsActive: true}}
	svc := NewTermService(repo, validator.New(), zap.NewNop())
	svc.now = func() time.Time {
		return time.Date(2026, 9, 1, 13, 45, 0, 0, time.UTC)
	}

	term, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), term.ID)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), repo.lastDay)
}

func TestTermCurrentNone(t *testing.T) {
	repo := &termRepoStub{}
	svc := NewTermService(repo, validator.New(), zap.NewNop())

	_, err := svc.Current(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNoCurrentTerm.Code, appErrors.FromError(err).Code)
}

func TestTermCreateRejectsActiveOverlap(t *testing.T) {
	repo := &termRepoStub{overlaps: true}
	svc := NewTermService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), dto.CreateTermRequest{
		Name: "2026/2027 Odd", StartDate: "2026-09-01", EndDate: "2027-01-31",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestTermCreateInactiveSkipsOverlapCheck(t *testing.T) {
	repo := &termRepoStub{overlaps: true}
	svc := NewTermService(repo, validator.New(), zap.NewNop())

	inactive := false
	term, err := svc.Create(context.Background(), dto.CreateTermRequest{
		Name: "Draft Term", StartDate: "2026-09-01", EndDate: "2027-01-31", IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, term.IsActive)
}

func TestTermCreateInvertedDates(t *testing.T) {
	repo := &termRepoStub{}
	svc := NewTermService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), dto.CreateTermRequest{
		Name: "Backwards", StartDate: "2027-01-31", EndDate: "2026-09-01",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
