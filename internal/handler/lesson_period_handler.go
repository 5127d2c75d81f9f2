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

// LessonPeriodHandler exposes the scheduling grid's time axis.
type LessonPeriodHandler struct {
	service *service.LessonPeriodService
}

// NewLessonPeriodHandler constructs a lesson period handler.
func NewLessonPeriodHandler(svc *service.LessonPeriodService) *LessonPeriodHandler {
	return &LessonPeriodHandler{service: svc}
}

// List godoc
// @Summary List lesson periods
// @Tags LessonPeriods
// @Produce json
// @Param activeOnly query bool false "Only active periods"
// @Success 200 {object} response.Envelope
// @Router /lesson-periods [get]
func (h *LessonPeriodHandler) List(c *gin.Context) {
	onlyActive, _ := strconv.ParseBool(c.DefaultQuery("activeOnly", "false"))
	periods, err := h.service.List(c.Request.Context(), onlyActive)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, periods, nil)
}

// Create godoc
// @Summary Create lesson period
// @Tags LessonPeriods
// @Accept json
// @Produce json
// @Param payload body dto.CreateLessonPeriodRequest true "Period payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /lesson-periods [post]
func (h *LessonPeriodHandler) Create(c *gin.Context) {
	var req dto.CreateLessonPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	period, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, period)
}

// Remove godoc
// @Summary Remove lesson period
// @Description Hard-deletes an unreferenced period, deactivates one slots still use
// @Tags LessonPeriods
// @Param id path int true "Period ID"
// @Success 204
// @Router /lesson-periods/{id} [delete]
func (h *LessonPeriodHandler) Remove(c *gin.Context) {
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
