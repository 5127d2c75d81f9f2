package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/models"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
)

type offeringRepository interface {
	FindByID(ctx context.Context, id int64) (*models.ClassSubject, error)
	ExistsActive(ctx context.Context, classID, subjectID, termID int64) (bool, error)
	Create(ctx context.Context, cs *models.ClassSubject) error
	ListAvailableSubjects(ctx context.Context, classID int64) ([]models.Subject, error)
	ListOffered(ctx context.Context, classID int64, termID, trainerID int64) ([]models.OfferedSubject, error)
	RemoveCascade(ctx context.Context, classSubjectID int64) (int, error)
}

type offeringClassReader interface {
	FindByID(ctx context.Context, id int64) (*models.Class, error)
}

type offeringSubjectReader interface {
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
}

type offeringTermReader interface {
	FindByID(ctx context.Context, id int64) (*models.Term, error)
}

// OfferingService owns the offering registry: which subjects are
// legitimately taught in which class during which term.
type OfferingService struct {
	repo      offeringRepository
	classes   offeringClassReader
	subjects  offeringSubjectReader
	terms     offeringTermReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOfferingService constructs an OfferingService.
func NewOfferingService(repo offeringRepository, classes offeringClassReader, subjects offeringSubjectReader, terms offeringTermReader, validate *validator.Validate, logger *zap.Logger) *OfferingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OfferingService{
		repo:      repo,
		classes:   classes,
		subjects:  subjects,
		terms:     terms,
		validator: validate,
		logger:    logger,
	}
}

// ListAvailableSubjects returns active subjects a class has never
// offered, for "add subject" pickers.
func (s *OfferingService) ListAvailableSubjects(ctx context.Context, classID int64) ([]models.Subject, error) {
	if err := s.ensureClassExists(ctx, classID); err != nil {
		return nil, err
	}
	subjects, err := s.repo.ListAvailableSubjects(ctx, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list available subjects")
	}
	return subjects, nil
}

// ListOfferedSubjects returns the class's offerings, optionally scoped
// to a term and annotated with a trainer's assignment state.
func (s *OfferingService) ListOfferedSubjects(ctx context.Context, classID, termID, trainerID int64) ([]models.OfferedSubject, error) {
	if err := s.ensureClassExists(ctx, classID); err != nil {
		return nil, err
	}
	offered, err := s.repo.ListOffered(ctx, classID, termID, trainerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list offered subjects")
	}
	return offered, nil
}

// CreateOffering links a subject to a class for a term. Duplicate
// active triples are rejected here and again by the storage index.
func (s *OfferingService) CreateOffering(ctx context.Context, classID int64, req dto.CreateOfferingRequest) (*models.ClassSubject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid offering payload")
	}
	if err := s.ensureClassExists(ctx, classID); err != nil {
		return nil, err
	}
	subject, err := s.subjects.FindByID(ctx, req.SubjectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify subject")
	}
	if !subject.IsActive {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject is inactive")
	}
	if _, err := s.terms.FindByID(ctx, req.TermID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify term")
	}

	exists, err := s.repo.ExistsActive(ctx, classID, req.SubjectID, req.TermID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check offering")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "subject already offered in this class for the term")
	}

	cs := &models.ClassSubject{ClassID: classID, SubjectID: req.SubjectID, TermID: req.TermID, IsActive: true}
	if err := s.repo.Create(ctx, cs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create offering")
	}
	s.logger.Info("offering created",
		zap.Int64("class_subject_id", cs.ID),
		zap.Int64("class_id", classID),
		zap.Int64("subject_id", req.SubjectID),
		zap.Int64("term_id", req.TermID))
	return cs, nil
}

// RemoveOffering tears down an offering and every subject assignment
// hanging off it in one transaction, so no assignment is ever left
// pointing at a missing offering.
func (s *OfferingService) RemoveOffering(ctx context.Context, classSubjectID int64) error {
	deactivated, err := s.repo.RemoveCascade(ctx, classSubjectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "offering not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove offering")
	}
	s.logger.Info("offering removed",
		zap.Int64("class_subject_id", classSubjectID),
		zap.Int("deactivated_assignments", deactivated))
	return nil
}

func (s *OfferingService) ensureClassExists(ctx context.Context, classID int64) error {
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "class not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify class")
	}
	return nil
}
