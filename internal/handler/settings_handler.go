package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/service"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
	"github.com/campushub/scheduling-api/pkg/response"
)

// SettingsHandler exposes the timetable settings singleton.
type SettingsHandler struct {
	service *service.SettingsService
}

// NewSettingsHandler constructs a settings handler.
func NewSettingsHandler(svc *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: svc}
}

// Get godoc
// @Summary Get timetable settings
// @Description Returns documented defaults when no settings row exists
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/timetable [get]
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Update godoc
// @Summary Update timetable settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param payload body dto.UpdateTimetableSettingsRequest true "Partial settings"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /settings/timetable [put]
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateTimetableSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	settings, err := h.service.Update(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}
