package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/models"
	"github.com/campushub/scheduling-api/internal/repository"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
)

type slotRepository interface {
	FindOccupied(ctx context.Context, resource repository.OccupancyResource, resourceID, termID int64, dayOfWeek int, lessonPeriodID, excludeSlotID int64) (*models.SlotSummary, error)
	ListByTerm(ctx context.Context, termID int64) ([]models.SlotSummary, error)
	ListByClass(ctx context.Context, classID, termID int64) ([]models.SlotSummary, error)
	FindByID(ctx context.Context, id int64) (*models.TimetableSlot, error)
	Create(ctx context.Context, slot *models.TimetableSlot) error
	Cancel(ctx context.Context, id int64) error
}

type availabilityUserReader interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

type availabilityTermReader interface {
	FindByID(ctx context.Context, id int64) (*models.Term, error)
}

type availabilityPeriodReader interface {
	FindByID(ctx context.Context, id int64) (*models.LessonPeriod, error)
}

type availabilityRoomReader interface {
	FindByID(ctx context.Context, id int64) (*models.Room, error)
}

// AvailabilityService answers resource occupancy questions and guards
// slot placement. Trainer and room checks are two instances of one
// occupancy query keyed by a whitelisted resource column.
type AvailabilityService struct {
	slots     slotRepository
	users     availabilityUserReader
	terms     availabilityTermReader
	periods   availabilityPeriodReader
	rooms     availabilityRoomReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService constructs an AvailabilityService.
func NewAvailabilityService(slots slotRepository, users availabilityUserReader, terms availabilityTermReader, periods availabilityPeriodReader, rooms availabilityRoomReader, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{
		slots:     slots,
		users:     users,
		terms:     terms,
		periods:   periods,
		rooms:     rooms,
		validator: validate,
		logger:    logger,
	}
}

// CheckTrainerAvailability checks the trainer dimension at
// (term, day, period), optionally ignoring one slot being edited.
func (s *AvailabilityService) CheckTrainerAvailability(ctx context.Context, trainerID int64, q dto.AvailabilityQuery) (*models.AvailabilityResult, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
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
	if err := s.verifyGrid(ctx, q.TermID, q.LessonPeriodID); err != nil {
		return nil, err
	}
	return s.checkOccupancy(ctx, repository.ResourceTrainer, trainerID, q)
}

// CheckRoomAvailability checks the room dimension.
func (s *AvailabilityService) CheckRoomAvailability(ctx context.Context, roomID int64, q dto.AvailabilityQuery) (*models.AvailabilityResult, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability query")
	}
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load room")
	}
	if !room.IsActive {
		return nil, appErrors.Clone(appErrors.ErrValidation, "room is inactive")
	}
	if err := s.verifyGrid(ctx, q.TermID, q.LessonPeriodID); err != nil {
		return nil, err
	}
	return s.checkOccupancy(ctx, repository.ResourceRoom, roomID, q)
}

// CreateSlot validates both occupancy dimensions and inserts the slot.
// Storage-level partial unique indexes reject the loser of a
// check-then-act race with the same Conflict outcome.
func (s *AvailabilityService) CreateSlot(ctx context.Context, req dto.CreateSlotRequest) (*models.TimetableSlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid slot payload")
	}
	q := dto.AvailabilityQuery{TermID: req.TermID, DayOfWeek: req.DayOfWeek, LessonPeriodID: req.LessonPeriodID}

	trainerResult, err := s.CheckTrainerAvailability(ctx, req.EmployeeID, q)
	if err != nil {
		return nil, err
	}
	if !trainerResult.IsAvailable {
		return nil, conflictFromSummary("trainer", trainerResult.Conflict)
	}
	roomResult, err := s.CheckRoomAvailability(ctx, req.RoomID, q)
	if err != nil {
		return nil, err
	}
	if !roomResult.IsAvailable {
		return nil, conflictFromSummary("room", roomResult.Conflict)
	}

	slot := &models.TimetableSlot{
		ClassID:        req.ClassID,
		SubjectID:      req.SubjectID,
		EmployeeID:     req.EmployeeID,
		RoomID:         req.RoomID,
		LessonPeriodID: req.LessonPeriodID,
		DayOfWeek:      req.DayOfWeek,
		TermID:         req.TermID,
		Status:         models.SlotActive,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "slot placement collided with a concurrent write")
	}
	s.logger.Info("slot created",
		zap.Int64("slot_id", slot.ID),
		zap.Int64("term_id", slot.TermID),
		zap.Int("day_of_week", slot.DayOfWeek),
		zap.Int64("lesson_period_id", slot.LessonPeriodID))
	return slot, nil
}

// CancelSlot marks a slot cancelled; cancelling an already cancelled
// slot is a no-op success.
func (s *AvailabilityService) CancelSlot(ctx context.Context, id int64) (*dto.CancelResult, error) {
	if _, err := s.slots.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load slot")
	}
	if err := s.slots.Cancel(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return &dto.CancelResult{Action: "none", Message: "slot already cancelled", SlotID: id}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel slot")
	}
	s.logger.Info("slot cancelled", zap.Int64("slot_id", id))
	return &dto.CancelResult{Action: "cancelled", Message: "slot cancelled", SlotID: id}, nil
}

// ListTermSlots returns a term's live slots for timetable views.
func (s *AvailabilityService) ListTermSlots(ctx context.Context, termID int64) ([]models.SlotSummary, error) {
	slots, err := s.slots.ListByTerm(ctx, termID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list slots")
	}
	return slots, nil
}

// ListClassSlots returns one class's live slots in a term.
func (s *AvailabilityService) ListClassSlots(ctx context.Context, classID, termID int64) ([]models.SlotSummary, error) {
	slots, err := s.slots.ListByClass(ctx, classID, termID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class slots")
	}
	return slots, nil
}

func (s *AvailabilityService) verifyGrid(ctx context.Context, termID, periodID int64) error {
	if _, err := s.terms.FindByID(ctx, termID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "term not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load term")
	}
	period, err := s.periods.FindByID(ctx, periodID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "lesson period not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lesson period")
	}
	if !period.IsActive {
		return appErrors.Clone(appErrors.ErrValidation, "lesson period is inactive")
	}
	return nil
}

func (s *AvailabilityService) checkOccupancy(ctx context.Context, resource repository.OccupancyResource, resourceID int64, q dto.AvailabilityQuery) (*models.AvailabilityResult, error) {
	conflict, err := s.slots.FindOccupied(ctx, resource, resourceID, q.TermID, q.DayOfWeek, q.LessonPeriodID, q.ExcludeSlotID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &models.AvailabilityResult{IsAvailable: true}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check occupancy")
	}
	return &models.AvailabilityResult{IsAvailable: false, Conflict: conflict}, nil
}

func conflictFromSummary(dimension string, conflict *models.SlotSummary) *appErrors.Error {
	msg := fmt.Sprintf("%s is already occupied at this time", dimension)
	if conflict != nil {
		msg = fmt.Sprintf("%s is already occupied by %s in %s", dimension, conflict.SubjectName, conflict.ClassName)
	}
	return appErrors.Clone(appErrors.ErrConflict, msg)
}
