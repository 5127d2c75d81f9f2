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
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
)

type assignmentRepository interface {
	FindLatestSubjectAssignment(ctx context.Context, trainerID, subjectID, termID int64) (*models.TrainerSubjectAssignment, error)
	FindHeldSubjectAssignment(ctx context.Context, trainerID, subjectID, termID int64) (*models.SubjectAssignmentDetail, error)
	ListActiveSubjectAssignments(ctx context.Context, trainerID int64) ([]models.SubjectAssignmentDetail, error)
	CreateSubjectAssignment(ctx context.Context, tsa *models.TrainerSubjectAssignment) error
	UpdateSubjectAssignment(ctx context.Context, tsa *models.TrainerSubjectAssignment) error
	FindActiveClassAssignment(ctx context.Context, trainerID, classID int64) (*models.TrainerClassAssignment, error)
	CreateClassAssignment(ctx context.Context, tca *models.TrainerClassAssignment) error
	DeactivateClassAssignment(ctx context.Context, id int64) error
	CountAttendance(ctx context.Context, trainerID, classID int64) (int, error)
}

type assignmentOfferingReader interface {
	FindByID(ctx context.Context, id int64) (*models.ClassSubject, error)
}

type assignmentUserReader interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type assignmentClassReader interface {
	FindByID(ctx context.Context, id int64) (*models.Class, error)
}

type assignmentSettingsReader interface {
	Get(ctx context.Context) (models.TimetableSettings, error)
}

// AssignmentService enforces the one-subject-per-trainer-per-term rule.
// The subject-assignment table holds at most one row per
// (trainer, subject, term) key; that row is toggled or repointed in
// place, never appended to.
type AssignmentService struct {
	repo      assignmentRepository
	offerings assignmentOfferingReader
	users     assignmentUserReader
	classes   assignmentClassReader
	settings  assignmentSettingsReader
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(repo assignmentRepository, offerings assignmentOfferingReader, users assignmentUserReader, classes assignmentClassReader, settings assignmentSettingsReader, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		repo:      repo,
		offerings: offerings,
		users:     users,
		classes:   classes,
		settings:  settings,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// SetSubjectAssignment applies the assignment state machine for one
// (trainer, subject, term) key. Preconditions are checked in a fixed
// order; the first failure wins.
func (s *AssignmentService) SetSubjectAssignment(ctx context.Context, trainerID int64, req dto.SetSubjectAssignmentRequest, caller *models.JWTClaims) (*models.SubjectAssignmentResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}

	// 1. The offering must exist and agree with the denormalized
	// term/subject fields the client sent. A mismatch means the client
	// acted on stale state.
	offering, err := s.offerings.FindByID(ctx, req.ClassSubjectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "offering not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load offering")
	}
	if offering.TermID != req.TermID || offering.SubjectID != req.SubjectID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "term or subject does not match the referenced offering")
	}

	// 2. Privileged or self.
	if caller == nil {
		return nil, appErrors.ErrUnauthorized
	}
	privileged := caller.HasSchedulingPrivilege()
	if !privileged && caller.UserID != trainerID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot modify another trainer's assignment")
	}
	if privileged && caller.UserID != trainerID {
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		if !cfg.AllowAdminAssignment {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "assigning on behalf of trainers is disabled")
		}
	}

	// 3. Blocks and the generation deadline apply to non-privileged
	// callers only.
	if !privileged {
		cfg, err := s.settings.Get(ctx)
		if err != nil {
			return nil, err
		}
		if cfg.BlockAllSubjectSelection {
			return nil, appErrors.Clone(appErrors.ErrBlocked, "subject selection is currently blocked for all trainers")
		}
		trainer, err := s.users.FindByID(ctx, trainerID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "trainer not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainer")
		}
		if trainer.BlockSubjectSelection {
			return nil, appErrors.Clone(appErrors.ErrBlocked, "subject selection is blocked for this trainer")
		}
		if cfg.DeadlinePassed(s.now().UTC()) {
			return nil, appErrors.Clone(appErrors.ErrBlocked, "the timetable generation deadline has passed")
		}
	}

	existing, err := s.repo.FindLatestSubjectAssignment(ctx, trainerID, req.SubjectID, req.TermID)
	if err != nil && err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}

	switch {
	case existing == nil && req.IsActive:
		tsa := &models.TrainerSubjectAssignment{
			TrainerID:      trainerID,
			SubjectID:      req.SubjectID,
			TermID:         req.TermID,
			ClassSubjectID: req.ClassSubjectID,
			IsActive:       true,
		}
		if err := s.repo.CreateSubjectAssignment(ctx, tsa); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
		}
		s.logger.Info("subject assignment created",
			zap.Int64("trainer_id", trainerID),
			zap.Int64("subject_id", req.SubjectID),
			zap.Int64("term_id", req.TermID))
		return assignmentResult(models.AssignmentCreated, "assignment created", tsa), nil

	case existing == nil && !req.IsActive:
		return &models.SubjectAssignmentResult{
			Action:         models.AssignmentNone,
			Message:        "nothing to deactivate",
			TrainerID:      trainerID,
			SubjectID:      req.SubjectID,
			TermID:         req.TermID,
			ClassSubjectID: req.ClassSubjectID,
			IsActive:       false,
		}, nil

	case existing.ClassSubjectID == req.ClassSubjectID:
		existing.IsActive = req.IsActive
		if err := s.repo.UpdateSubjectAssignment(ctx, existing); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
		}
		return assignmentResult(models.AssignmentUpdated, "assignment updated", existing), nil

	case req.IsActive:
		// Same subject, same term, different offering: activating would
		// schedule the trainer for one subject in two classes at once.
		held, err := s.repo.FindHeldSubjectAssignment(ctx, trainerID, req.SubjectID, req.TermID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load holding assignment")
		}
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("trainer is already assigned this subject in class %s", held.ClassName))

	default:
		// Deactivation against a different offering is a class switch:
		// repoint the single row and apply the requested flag.
		existing.ClassSubjectID = req.ClassSubjectID
		existing.IsActive = false
		if err := s.repo.UpdateSubjectAssignment(ctx, existing); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update assignment")
		}
		return assignmentResult(models.AssignmentUpdated, "assignment moved and deactivated", existing), nil
	}
}

// ListSubjectAssignments returns the trainer's active subject
// assignments with holding classes.
func (s *AssignmentService) ListSubjectAssignments(ctx context.Context, trainerID int64) ([]models.SubjectAssignmentDetail, error) {
	details, err := s.repo.ListActiveSubjectAssignments(ctx, trainerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return details, nil
}

// AssignClass creates the coarse trainer-class link. Only privileged
// callers manage these; an existing active link is a conflict because
// the storage index allows one live row per (trainer, class).
func (s *AssignmentService) AssignClass(ctx context.Context, trainerID, classID int64, caller *models.JWTClaims) (*models.TrainerClassAssignment, error) {
	if caller == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !caller.HasSchedulingPrivilege() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only scheduling admins can assign classes")
	}

	trainer, err := s.users.FindByID(ctx, trainerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "trainer not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load trainer")
	}
	if !trainer.CanBeScheduled() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "trainer is inactive or not schedulable")
	}
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class")
	}
	if !class.IsActive {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class is inactive")
	}

	if _, err := s.repo.FindActiveClassAssignment(ctx, trainerID, classID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "trainer is already assigned to this class")
	} else if err != sql.ErrNoRows {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check class assignment")
	}

	tca := &models.TrainerClassAssignment{TrainerID: trainerID, ClassID: classID, IsActive: true}
	if err := s.repo.CreateClassAssignment(ctx, tca); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "class assignment collided with a concurrent write")
	}
	s.logger.Info("class assignment created",
		zap.Int64("trainer_id", trainerID),
		zap.Int64("class_id", classID))
	return tca, nil
}

// RemoveClassAssignment deactivates the coarse trainer-class link.
// Attendance history keyed on the pairing is counted and reported, never
// touched.
func (s *AssignmentService) RemoveClassAssignment(ctx context.Context, trainerID, classID int64, caller *models.JWTClaims) (*models.RemovedClassAssignment, error) {
	if caller == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if !caller.HasSchedulingPrivilege() && caller.UserID != trainerID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot remove another trainer's class assignment")
	}

	assignment, err := s.repo.FindActiveClassAssignment(ctx, trainerID, classID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class assignment")
	}

	if err := s.repo.DeactivateClassAssignment(ctx, assignment.ID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate class assignment")
	}

	attendance, err := s.repo.CountAttendance(ctx, trainerID, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count attendance")
	}

	className := ""
	if class, err := s.classes.FindByID(ctx, classID); err == nil {
		className = class.Name
	}

	s.logger.Info("class assignment removed",
		zap.Int64("trainer_id", trainerID),
		zap.Int64("class_id", classID),
		zap.Int("preserved_attendance", attendance))

	return &models.RemovedClassAssignment{
		TrainerID:           trainerID,
		ClassID:             classID,
		ClassName:           className,
		PreservedAttendance: attendance,
	}, nil
}

func assignmentResult(action models.AssignmentAction, message string, tsa *models.TrainerSubjectAssignment) *models.SubjectAssignmentResult {
	return &models.SubjectAssignmentResult{
		Action:         action,
		Message:        message,
		TrainerID:      tsa.TrainerID,
		SubjectID:      tsa.SubjectID,
		TermID:         tsa.TermID,
		ClassSubjectID: tsa.ClassSubjectID,
		IsActive:       tsa.IsActive,
	}
}
