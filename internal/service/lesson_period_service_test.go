package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/models"
	"github.com/campushub/scheduling-api/internal/repository"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
)

type lessonPeriodRepoStub struct {
	items       map[int64]*models.LessonPeriod
	overlap     *models.LessonPeriod
	created     []*models.LessonPeriod
	createErr   error
	slotCount   int
	deactivated []int64
	deleted     []int64
}

func (s *lessonPeriodRepoStub) List(ctx context.Context, onlyActive bool) ([]models.LessonPeriod, error) {
	return nil, nil
}

func (s *lessonPeriodRepoStub) FindByID(ctx context.Context, id int64) (*models.LessonPeriod, error) {
	if period, ok := s.items[id]; ok {
		cp := *period
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (s *lessonPeriodRepoStub) FindOverlapping(ctx context.Context, startTime, endTime string, excludeID int64) (*models.LessonPeriod, error) {
	if s.overlap == nil {
		return nil, sql.ErrNoRows
	}
	cp := *s.overlap
	return &cp, nil
}

func (s *lessonPeriodRepoStub) Create(ctx context.Context, period *models.LessonPeriod) error {
	if s.createErr != nil {
		return s.createErr
	}
	period.ID = 30
	s.created = append(s.created, period)
	return nil
}

func (s *lessonPeriodRepoStub) CountSlots(ctx context.Context, id int64) (int, error) {
	return s.slotCount, nil
}

func (s *lessonPeriodRepoStub) Deactivate(ctx context.Context, id int64) error {
	s.deactivated = append(s.deactivated, id)
	return nil
}

func (s *lessonPeriodRepoStub) Delete(ctx context.Context, id int64) error {
	s.deleted = append(s.deleted, id)
	return nil
}

func TestLessonPeriodCreate(t *testing.T) {
	repo := &lessonPeriodRepoStub{items: map[int64]*models.LessonPeriod{}}
	svc := NewLessonPeriodService(repo, validator.New(), zap.NewNop())

	period, err := svc.Create(context.Background(), dto.CreateLessonPeriodRequest{
		Name: "Period 1", StartTime: "07:30", EndTime: "08:15",
	})
	require.NoError(t, err)
	assert.Equal(t, 45, period.DurationMinutes)
	assert.True(t, period.IsActive)
	require.Len(t, repo.created, 1)
}

func TestLessonPeriodCreateInvertedInterval(t *testing.T) {
	repo := &lessonPeriodRepoStub{items: map[int64]*models.LessonPeriod{}}
	svc := NewLessonPeriodService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), dto.CreateLessonPeriodRequest{
		Name: "Period 1", StartTime: "08:15", EndTime: "07:30",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestLessonPeriodCreateOverlapConflict(t *testing.T) {
	repo := &lessonPeriodRepoStub{
		items:   map[int64]*models.LessonPeriod{},
		overlap: &models.LessonPeriod{ID: 1, Name: "Period 1", StartTime: "07:30", EndTime: "08:15", IsActive: true},
	}
	svc := NewLessonPeriodService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), dto.CreateLessonPeriodRequest{
		Name: "Period 1b", StartTime: "08:00", EndTime: "08:45",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "Period 1")
}

func TestLessonPeriodCreateLosesOverlapRace(t *testing.T) {
	// The pre-check sees no overlap, but a concurrent create wins and
	// the storage constraint rejects the insert.
	repo := &lessonPeriodRepoStub{
		items:     map[int64]*models.LessonPeriod{},
		createErr: repository.ErrPeriodOverlap,
	}
	svc := NewLessonPeriodService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), dto.CreateLessonPeriodRequest{
		Name: "Period 2", StartTime: "08:15", EndTime: "09:00",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.created)
}

func TestLessonPeriodRemoveDeactivatesWhenReferenced(t *testing.T) {
	repo := &lessonPeriodRepoStub{
		items:     map[int64]*models.LessonPeriod{3: {ID: 3, Name: "Period 3", IsActive: true}},
		slotCount: 4,
	}
	svc := NewLessonPeriodService(repo, validator.New(), zap.NewNop())

	err := svc.Remove(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, repo.deactivated)
	assert.Empty(t, repo.deleted)
}

func TestLessonPeriodRemoveDeletesWhenUnreferenced(t *testing.T) {
	repo := &lessonPeriodRepoStub{
		items: map[int64]*models.LessonPeriod{3: {ID: 3, Name: "Period 3", IsActive: true}},
	}
	svc := NewLessonPeriodService(repo, validator.New(), zap.NewNop())

	err := svc.Remove(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, repo.deleted)
	assert.Empty(t, repo.deactivated)
}
