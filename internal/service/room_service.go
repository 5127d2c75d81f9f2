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

type roomRepository interface {
	List(ctx context.Context, onlyActive bool) ([]models.Room, error)
	FindByID(ctx context.Context, id int64) (*models.Room, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Deactivate(ctx context.Context, id int64) error
}

// RoomService manages the room catalog. Room names are unique
// case-insensitively.
type RoomService struct {
	repo      roomRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRoomService constructs a RoomService.
func NewRoomService(repo roomRepository, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validator: validate, logger: logger}
}

// List returns rooms, optionally only active ones.
func (s *RoomService) List(ctx context.Context, onlyActive bool) ([]models.Room, error) {
	rooms, err := s.repo.List(ctx, onlyActive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	return rooms, nil
}

// Get loads a room by id.
func (s *RoomService) Get(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to get room")
	}
	return room, nil
}

// Create registers a new room.
func (s *RoomService) Create(ctx context.Context, req dto.CreateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	roomType := models.RoomType(req.RoomType)
	if !models.ValidRoomType(roomType) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported room type")
	}
	taken, err := s.repo.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room name")
	}
	if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "room name already in use")
	}

	room := &models.Room{Name: req.Name, Capacity: req.Capacity, RoomType: roomType, IsActive: true}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create room")
	}
	s.logger.Info("room created", zap.Int64("room_id", room.ID), zap.String("name", room.Name))
	return room, nil
}

// Update applies a partial update to a room.
func (s *RoomService) Update(ctx context.Context, id int64, req dto.UpdateRoomRequest) (*models.Room, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" && req.Name != room.Name {
		taken, err := s.repo.ExistsByName(ctx, req.Name, room.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check room name")
		}
		if taken {
			return nil, appErrors.Clone(appErrors.ErrConflict, "room name already in use")
		}
		room.Name = req.Name
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.RoomType != "" {
		roomType := models.RoomType(req.RoomType)
		if !models.ValidRoomType(roomType) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported room type")
		}
		room.RoomType = roomType
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update room")
	}
	return room, nil
}

// Remove deactivates a room; slots placed in it stay on the books.
func (s *RoomService) Remove(ctx context.Context, id int64) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate room")
	}
	s.logger.Info("room deactivated", zap.Int64("room_id", id))
	return nil
}
