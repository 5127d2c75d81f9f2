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

type assignmentRepoStub struct {
	latest       *models.TrainerSubjectAssignment
	held         *models.SubjectAssignmentDetail
	created      []*models.TrainerSubjectAssignment
	updated      []*models.TrainerSubjectAssignment
	classAssign  *models.TrainerClassAssignment
	classCreated []*models.TrainerClassAssignment
	deactivated  []int64
	attendance   int
}

func (s *assignmentRepoStub) FindLatestSubjectAssignment(ctx context.Context, trainerID, subjectID, termID int64) (*models.TrainerSubjectAssignment, error) {
	if s.latest == nil {
		return nil, sql.ErrNoRows
	}
	cp := *s.latest
	return &cp, nil
}

func (s *assignmentRepoStub) FindHeldSubjectAssignment(ctx context.Context, trainerID, subjectID, termID int64) (*models.SubjectAssignmentDetail, error) {
	if s.held == nil {
		return nil, sql.ErrNoRows
	}
	cp := *s.held
	return &cp, nil
}

func (s *assignmentRepoStub) ListActiveSubjectAssignments(ctx context.Context, trainerID int64) ([]models.SubjectAssignmentDetail, error) {
	return nil, nil
}

func (s *assignmentRepoStub) CreateSubjectAssignment(ctx context.Context, tsa *models.TrainerSubjectAssignment) error {
	tsa.ID = 100
	s.created = append(s.created, tsa)
	return nil
}

func (s *assignmentRepoStub) UpdateSubjectAssignment(ctx context.Context, tsa *models.TrainerSubjectAssignment) error {
	s.updated = append(s.updated, tsa)
	return nil
}

func (s *assignmentRepoStub) FindActiveClassAssignment(ctx context.Context, trainerID, classID int64) (*models.TrainerClassAssignment, error) {
	if s.classAssign == nil {
		return nil, sql.ErrNoRows
	}
	cp := *s.classAssign
	return &cp, nil
}

func (s *assignmentRepoStub) CreateClassAssignment(ctx context.Context, tca *models.TrainerClassAssignment) error {
	tca.ID = 60
	s.classCreated = append(s.classCreated, tca)
	return nil
}

func (s *assignmentRepoStub) DeactivateClassAssignment(ctx context.Context, id int64) error {
	s.deactivated = append(s.deactivated, id)
	return nil
}

func (s *assignmentRepoStub) CountAttendance(ctx context.Context, trainerID, classID int64) (int, error) {
	return s.attendance, nil
}

type offeringReaderStub struct {
	items map[int64]*models.ClassSubject
}

func (s *offeringReaderStub) FindByID(ctx context.Context, id int64) (*models.ClassSubject, error) {
	if offering, ok := s.items[id]; ok {
		cp := *offering
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type userReaderStub struct {
	items map[int64]*models.User
}

func (s *userReaderStub) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if user, ok := s.items[id]; ok {
		cp := *user
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type classReaderStub struct {
	items map[int64]*models.Class
}

func (s *classReaderStub) FindByID(ctx context.Context, id int64) (*models.Class, error) {
	if class, ok := s.items[id]; ok {
		cp := *class
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

type settingsReaderStub struct {
	settings models.TimetableSettings
}

func (s *settingsReaderStub) Get(ctx context.Context) (models.TimetableSettings, error) {
	return s.settings, nil
}

func newAssignmentFixture() (*assignmentRepoStub, *offeringReaderStub, *userReaderStub, *classReaderStub, *settingsReaderStub) {
	repo := &assignmentRepoStub{}
	offerings := &offeringReaderStub{items: map[int64]*models.ClassSubject{
		10: {ID: 10, ClassID: 1, SubjectID: 5, TermID: 2, IsActive: true},
		11: {ID: 11, ClassID: 3, SubjectID: 5, TermID: 2, IsActive: true},
	}}
	users := &userReaderStub{items: map[int64]*models.User{
		7: {ID: 7, FullName: "Dian Lestari", Role: models.RoleEmployee, IsActive: true},
	}}
	classes := &classReaderStub{items: map[int64]*models.Class{
		1: {ID: 1, Name: "X-A", IsActive: true},
		3: {ID: 3, Name: "XI-B", IsActive: true},
	}}
	settings := &settingsReaderStub{}
	return repo, offerings, users, classes, settings
}

func selfClaims(id int64) *models.JWTClaims {
	return &models.JWTClaims{UserID: id, Role: models.RoleEmployee}
}

func adminClaims(id int64) *models.JWTClaims {
	return &models.JWTClaims{UserID: id, Role: models.RoleAdmin}
}

func TestSetSubjectAssignmentCreates(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	result, err := svc.SetSubjectAssignment(context.Background(), 7, dto.SetSubjectAssignmentRequest{
		TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: true,
	}, selfClaims(7))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCreated, result.Action)
	assert.True(t, result.IsActive)
	require.Len(t, repo.created, 1)
	assert.Equal(t, int64(10), repo.created[0].ClassSubjectID)
}

func TestSetSubjectAssignmentDeactivateWithoutRow(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	result, err := svc.SetSubjectAssignment(context.Background(), 7, dto.SetSubjectAssignmentRequest{
		TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: false,
	}, selfClaims(7))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentNone, result.Action)
	assert.Empty(t, repo.created)
	assert.Empty(t, repo.updated)
}

func TestSetSubjectAssignmentToggleIsIdempotent(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	repo.latest = &models.TrainerSubjectAssignment{
		ID: 50, TrainerID: 7, SubjectID: 5, TermID: 2, ClassSubjectID: 10, IsActive: true,
	}
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	req := dto.SetSubjectAssignmentRequest{TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: true}
	for i := 0; i < 2; i++ {
		result, err := svc.SetSubjectAssignment(context.Background(), 7, req, selfClaims(7))
		require.NoError(t, err)
		assert.Equal(t, models.AssignmentUpdated, result.Action)
		assert.True(t, result.IsActive)
	}
	assert.Empty(t, repo.created)
	assert.Len(t, repo.updated, 2)
}

func TestSetSubjectAssignmentCrossClassConflict(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	repo.latest = &models.TrainerSubjectAssignment{
		ID: 50, TrainerID: 7, SubjectID: 5, TermID: 2, ClassSubjectID: 11, IsActive: true,
	}
	repo.held = &models.SubjectAssignmentDetail{
		TrainerSubjectAssignment: *repo.latest,
		ClassID:                  3,
		ClassName:                "XI-B",
	}
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	_, err := svc.SetSubjectAssignment(context.Background(), 7, dto.SetSubjectAssignmentRequest{
		TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: true,
	}, selfClaims(7))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "XI-B")
}

func TestSetSubjectAssignmentClassSwitch(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	repo.latest = &models.TrainerSubjectAssignment{
		ID: 50, TrainerID: 7, SubjectID: 5, TermID: 2, ClassSubjectID: 11, IsActive: true,
	}
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	result, err := svc.SetSubjectAssignment(context.Background(), 7, dto.SetSubjectAssignmentRequest{
		TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: false,
	}, selfClaims(7))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentUpdated, result.Action)
	assert.False(t, result.IsActive)
	assert.Equal(t, int64(10), result.ClassSubjectID)
	require.Len(t, repo.updated, 1)
	assert.Equal(t, int64(10), repo.updated[0].ClassSubjectID)
	assert.False(t, repo.updated[0].IsActive)
}

func TestSetSubjectAssignmentStaleOfferingMismatch(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	_, err := svc.SetSubjectAssignment(context.Background(), 7, dto.SetSubjectAssignmentRequest{
		TermID: 99, ClassSubjectID: 10, SubjectID: 5, IsActive: true,
	}, selfClaims(7))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSetSubjectAssignmentForbiddenForOtherTrainer(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	_, err := svc.SetSubjectAssignment(context.Background(), 7, dto.SetSubjectAssignmentRequest{
		TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: true,
	}, selfClaims(8))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestSetSubjectAssignmentAdminOnBehalfRequiresSetting(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	req := dto.SetSubjectAssignmentRequest{TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: true}

	_, err := svc.SetSubjectAssignment(context.Background(), 7, req, adminClaims(99))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)

	settings.settings.AllowAdminAssignment = true
	result, err := svc.SetSubjectAssignment(context.Background(), 7, req, adminClaims(99))
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentCreated, result.Action)
}

func TestSetSubjectAssignmentGlobalBlock(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	settings.settings.BlockAllSubjectSelection = true
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	_, err := svc.SetSubjectAssignment(context.Background(), 7, dto.SetSubjectAssignmentRequest{
		TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: true,
	}, selfClaims(7))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBlocked.Code, appErrors.FromError(err).Code)
}

func TestSetSubjectAssignmentIndividualBlock(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	users.items[7].BlockSubjectSelection = true
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	_, err := svc.SetSubjectAssignment(context.Background(), 7, dto.SetSubjectAssignmentRequest{
		TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: true,
	}, selfClaims(7))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBlocked.Code, appErrors.FromError(err).Code)
}

func TestSetSubjectAssignmentDeadlineGate(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	deadline := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	settings.settings.GenerationDeadlineEnabled = true
	settings.settings.TimetableGenerationDeadline = &deadline
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())
	svc.now = func() time.Time { return deadline.Add(time.Hour) }

	req := dto.SetSubjectAssignmentRequest{TermID: 2, ClassSubjectID: 10, SubjectID: 5, IsActive: true}

	_, err := svc.SetSubjectAssignment(context.Background(), 7, req, selfClaims(7))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrBlocked.Code, appErrors.FromError(err).Code)

	// Privileged callers are not gated.
	_, err = svc.SetSubjectAssignment(context.Background(), 7, req, adminClaims(7))
	require.NoError(t, err)
}

func TestAssignClassCreates(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	assignment, err := svc.AssignClass(context.Background(), 7, 1, adminClaims(99))
	require.NoError(t, err)
	assert.Equal(t, int64(60), assignment.ID)
	assert.True(t, assignment.IsActive)
	require.Len(t, repo.classCreated, 1)
	assert.Equal(t, int64(7), repo.classCreated[0].TrainerID)
	assert.Equal(t, int64(1), repo.classCreated[0].ClassID)
}

func TestAssignClassDuplicateConflict(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	repo.classAssign = &models.TrainerClassAssignment{ID: 42, TrainerID: 7, ClassID: 1, IsActive: true}
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	_, err := svc.AssignClass(context.Background(), 7, 1, adminClaims(99))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.classCreated)
}

func TestAssignClassRequiresPrivilege(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	_, err := svc.AssignClass(context.Background(), 7, 1, selfClaims(7))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestAssignClassUnknownClass(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	_, err := svc.AssignClass(context.Background(), 7, 99, adminClaims(99))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRemoveClassAssignmentPreservesAttendance(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	repo.classAssign = &models.TrainerClassAssignment{ID: 42, TrainerID: 7, ClassID: 1, IsActive: true}
	repo.attendance = 17
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	removed, err := svc.RemoveClassAssignment(context.Background(), 7, 1, selfClaims(7))
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, repo.deactivated)
	assert.Equal(t, 17, removed.PreservedAttendance)
	assert.Equal(t, "X-A", removed.ClassName)
}

func TestRemoveClassAssignmentNotFound(t *testing.T) {
	repo, offerings, users, classes, settings := newAssignmentFixture()
	svc := NewAssignmentService(repo, offerings, users, classes, settings, validator.New(), zap.NewNop())

	_, err := svc.RemoveClassAssignment(context.Background(), 7, 1, selfClaims(7))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
