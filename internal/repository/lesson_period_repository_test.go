package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/scheduling-api/internal/models"
)

func TestLessonPeriodRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonPeriodRepository(db)

	mock.ExpectQuery("INSERT INTO lesson_periods").
		WithArgs("Period 1", "07:30", "08:15", 45, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(30))

	period := &models.LessonPeriod{Name: "Period 1", StartTime: "07:30", EndTime: "08:15", DurationMinutes: 45, IsActive: true}
	require.NoError(t, repo.Create(context.Background(), period))
	assert.Equal(t, int64(30), period.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonPeriodRepositoryCreateExclusionViolation(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewLessonPeriodRepository(db)

	mock.ExpectQuery("INSERT INTO lesson_periods").
		WithArgs("Period 1b", "08:00", "08:45", 45, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "lesson_periods_timerange_excl"})

	period := &models.LessonPeriod{Name: "Period 1b", StartTime: "08:00", EndTime: "08:45", DurationMinutes: 45, IsActive: true}
	err := repo.Create(context.Background(), period)
	assert.ErrorIs(t, err, ErrPeriodOverlap)
	assert.NoError(t, mock.ExpectationsWereMet())
}
