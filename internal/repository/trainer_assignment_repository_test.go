package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/scheduling-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestTrainerAssignmentRepositoryFindLatest(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "trainer_id", "subject_id", "term_id", "class_subject_id", "is_active", "created_at", "updated_at"}).
		AddRow(50, 7, 5, 2, 11, false, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, trainer_id, subject_id, term_id, class_subject_id, is_active, created_at, updated_at
FROM trainer_subject_assignments
WHERE trainer_id = $1 AND subject_id = $2 AND term_id = $3
ORDER BY id DESC LIMIT 1`)).
		WithArgs(int64(7), int64(5), int64(2)).
		WillReturnRows(rows)

	tsa, err := repo.FindLatestSubjectAssignment(context.Background(), 7, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(11), tsa.ClassSubjectID)
	assert.False(t, tsa.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerAssignmentRepositoryFindLatestMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerAssignmentRepository(db)

	mock.ExpectQuery("SELECT id, trainer_id, subject_id").
		WithArgs(int64(7), int64(5), int64(2)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindLatestSubjectAssignment(context.Background(), 7, 5, 2)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerAssignmentRepositoryCreateAndUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerAssignmentRepository(db)

	mock.ExpectQuery("INSERT INTO trainer_subject_assignments").
		WithArgs(int64(7), int64(5), int64(2), int64(10), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(50))

	tsa := &models.TrainerSubjectAssignment{TrainerID: 7, SubjectID: 5, TermID: 2, ClassSubjectID: 10, IsActive: true}
	require.NoError(t, repo.CreateSubjectAssignment(context.Background(), tsa))
	assert.Equal(t, int64(50), tsa.ID)

	mock.ExpectExec("UPDATE trainer_subject_assignments SET").
		WithArgs(int64(10), false, sqlmock.AnyArg(), int64(50)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	tsa.IsActive = false
	require.NoError(t, repo.UpdateSubjectAssignment(context.Background(), tsa))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerAssignmentRepositoryFindHeldSubjectAssignment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "trainer_id", "subject_id", "term_id", "class_subject_id", "is_active", "created_at", "updated_at", "class_id", "class_name"}).
		AddRow(50, 7, 5, 2, 11, true, time.Now(), time.Now(), 3, "XI-B")
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE tsa.trainer_id = $1 AND tsa.subject_id = $2 AND tsa.term_id = $3
ORDER BY tsa.id DESC LIMIT 1`)).
		WithArgs(int64(7), int64(5), int64(2)).
		WillReturnRows(rows)

	held, err := repo.FindHeldSubjectAssignment(context.Background(), 7, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, "XI-B", held.ClassName)
	assert.Equal(t, int64(11), held.ClassSubjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerAssignmentRepositoryCreateClassAssignment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerAssignmentRepository(db)

	mock.ExpectQuery("INSERT INTO trainer_class_assignments").
		WithArgs(int64(7), int64(1), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(60))

	tca := &models.TrainerClassAssignment{TrainerID: 7, ClassID: 1, IsActive: true}
	require.NoError(t, repo.CreateClassAssignment(context.Background(), tca))
	assert.Equal(t, int64(60), tca.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerAssignmentRepositoryDeactivateClassAssignment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerAssignmentRepository(db)

	mock.ExpectExec("UPDATE trainer_class_assignments SET is_active = FALSE").
		WithArgs(int64(42), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeactivateClassAssignment(context.Background(), 42))

	mock.ExpectExec("UPDATE trainer_class_assignments SET is_active = FALSE").
		WithArgs(int64(42), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.DeactivateClassAssignment(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTrainerAssignmentRepositoryCountAttendance(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTrainerAssignmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM attendance_records WHERE trainer_id = $1 AND class_id = $2")).
		WithArgs(int64(7), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	count, err := repo.CountAttendance(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 17, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
