package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassSubjectRepositoryListAvailableSubjects(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "name", "department", "can_be_online", "is_active", "created_at", "updated_at"}).
		AddRow(6, "HIST", "History", "Humanities", false, true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`s.id NOT IN (
    SELECT cs.subject_id FROM class_subjects cs WHERE cs.class_id = $1
  )`)).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	subjects, err := repo.ListAvailableSubjects(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "HIST", subjects[0].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSubjectRepositoryListOfferedTermFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSubjectRepository(db)

	columns := []string{
		"class_subject_id", "class_id", "subject_id", "term_id", "offering_active",
		"subject_code", "subject_name", "department", "can_be_online",
		"is_assigned", "is_assigned_elsewhere",
	}

	mock.ExpectQuery(regexp.QuoteMeta("AND cs.term_id = $3")).
		WithArgs(int64(1), int64(7), int64(2)).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(10, 1, 5, 2, true, "MATH", "Mathematics", "Science", false, true, false))

	offered, err := repo.ListOffered(context.Background(), 1, 2, 7)
	require.NoError(t, err)
	require.Len(t, offered, 1)
	assert.True(t, offered[0].IsAssigned)
	assert.False(t, offered[0].IsAssignedElsewhere)

	// Without a term the filter clause is absent and only two args bind.
	mock.ExpectQuery(regexp.QuoteMeta("WHERE cs.class_id = $1 ORDER BY s.name ASC")).
		WithArgs(int64(1), int64(7)).
		WillReturnRows(sqlmock.NewRows(columns))

	_, err = repo.ListOffered(context.Background(), 1, 0, 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSubjectRepositoryRemoveCascade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSubjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trainer_subject_assignments SET is_active = FALSE").
		WithArgs(int64(10), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE class_subjects SET is_active = FALSE").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM class_subjects").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	deactivated, err := repo.RemoveCascade(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, 3, deactivated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassSubjectRepositoryRemoveCascadeMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewClassSubjectRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trainer_subject_assignments SET is_active = FALSE").
		WithArgs(int64(10), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE class_subjects SET is_active = FALSE").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM class_subjects").
		WithArgs(int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.RemoveCascade(context.Background(), 10)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
