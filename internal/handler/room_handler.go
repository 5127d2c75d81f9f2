package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/service"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
	"github.com/campushub/scheduling-api/pkg/response"
)

// RoomHandler exposes room catalog and room availability endpoints.
type RoomHandler struct {
	service      *service.RoomService
	availability *service.AvailabilityService
}

// NewRoomHandler constructs a room handler.
func NewRoomHandler(svc *service.RoomService, availability *service.AvailabilityService) *RoomHandler {
	return &RoomHandler{service: svc, availability: availability}
}

// List godoc
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Param activeOnly query bool false "Only active rooms"
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("activeOnly", "false"))
	rooms, err := h.service.List(c.Request.Context(), onlyActive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// Create godoc
// @Summary Create room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body dto.CreateRoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Update godoc
// @Summary Update room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path int true "Room ID"
// @Param payload body dto.UpdateRoomRequest true "Room payload"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	room, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// Remove godoc
// @Summary Deactivate room
// @Tags Rooms
// @Param id path int true "Room ID"
// @Success 204
// @Router /rooms/{id} [delete]
func (h *RoomHandler) Remove(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Availability godoc
// @Summary Check room availability
// @Tags Rooms
// @Produce json
// @Param id path int true "Room ID"
// @Param term_id query int true "Term ID"
// @Param day_of_week query int true "Day of week, 0-6, Sunday=0"
// @Param lesson_period_id query int true "Lesson period ID"
// @Param exclude_slot_id query int false "Slot to ignore"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) Availability(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	q, err := bindAvailabilityQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.availability.CheckRoomAvailability(c.Request.Context(), id, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
