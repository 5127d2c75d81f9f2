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

// AvailabilityHandler exposes occupancy checks and slot mutations.
type AvailabilityHandler struct {
	service *service.AvailabilityService
}

// NewAvailabilityHandler constructs an availability handler.
func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// TrainerAvailability godoc
// @Summary Check trainer availability
// @Tags Availability
// @Produce json
// @Param id path int true "Trainer ID"
// @Param term_id query int true "Term ID"
// @Param day_of_week query int true "Day of week, 0-6, Sunday=0"
// @Param lesson_period_id query int true "Lesson period ID"
// @Param exclude_slot_id query int false "Slot to ignore"
// @Success 200 {object} response.Envelope
// @Router /trainers/{id}/availability [get]
func (h *AvailabilityHandler) TrainerAvailability(c *gin.Context) {
	trainerID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	q, err := bindAvailabilityQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.CheckTrainerAvailability(c.Request.Context(), trainerID, q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// CreateSlot godoc
// @Summary Place a timetable slot
// @Description Validates trainer and room occupancy before inserting
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body dto.CreateSlotRequest true "Slot payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /timetable-slots [post]
func (h *AvailabilityHandler) CreateSlot(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.service.CreateSlot(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// CancelSlot godoc
// @Summary Cancel a timetable slot
// @Description Cancelling an already cancelled slot is a no-op success
// @Tags Availability
// @Produce json
// @Param id path int true "Slot ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /timetable-slots/{id} [delete]
func (h *AvailabilityHandler) CancelSlot(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.CancelSlot(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// TermSlots godoc
// @Summary List a term's live slots
// @Tags Availability
// @Produce json
// @Param id path int true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /terms/{id}/timetable-slots [get]
func (h *AvailabilityHandler) TermSlots(c *gin.Context) {
	termID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	slots, err := h.service.ListTermSlots(c.Request.Context(), termID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// ClassSlots godoc
// @Summary List a class's live slots in a term
// @Tags Availability
// @Produce json
// @Param id path int true "Class ID"
// @Param term_id query int true "Term ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/timetable-slots [get]
func (h *AvailabilityHandler) ClassSlots(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	termID, err := requiredQueryID(c, "term_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	slots, err := h.service.ListClassSlots(c.Request.Context(), classID, termID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// bindAvailabilityQuery parses the availability query parameters,
// reporting the first malformed value.
func bindAvailabilityQuery(c *gin.Context) (dto.AvailabilityQuery, error) {
	var q dto.AvailabilityQuery
	var err error

	if q.TermID, err = requiredQueryID(c, "term_id"); err != nil {
		return q, err
	}
	rawDay := c.Query("day_of_week")
	if rawDay == "" {
		return q, appErrors.Clone(appErrors.ErrValidation, "day_of_week is required")
	}
	day, convErr := strconv.Atoi(rawDay)
	if convErr != nil || day < 0 || day > 6 {
		return q, appErrors.Clone(appErrors.ErrValidation, "day_of_week must be an integer between 0 and 6")
	}
	q.DayOfWeek = day
	if q.LessonPeriodID, err = requiredQueryID(c, "lesson_period_id"); err != nil {
		return q, err
	}
	if q.ExcludeSlotID, err = queryID(c, "exclude_slot_id"); err != nil {
		return q, err
	}
	return q, nil
}

func requiredQueryID(c *gin.Context, param string) (int64, error) {
	id, err := queryID(c, param)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, param+" is required")
	}
	return id, nil
}
