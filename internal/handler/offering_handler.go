package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/service"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
	"github.com/campushub/scheduling-api/pkg/response"
)

// OfferingHandler exposes the offering registry.
type OfferingHandler struct {
	service *service.OfferingService
}

// NewOfferingHandler constructs an offering handler.
func NewOfferingHandler(svc *service.OfferingService) *OfferingHandler {
	return &OfferingHandler{service: svc}
}

// AvailableSubjects godoc
// @Summary List subjects a class can still add
// @Tags Offerings
// @Produce json
// @Param id path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/available-subjects [get]
func (h *OfferingHandler) AvailableSubjects(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	subjects, err := h.service.ListAvailableSubjects(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects, nil)
}

// OfferedSubjects godoc
// @Summary List a class's offerings with assignment annotations
// @Tags Offerings
// @Produce json
// @Param id path int true "Class ID"
// @Param term_id query int false "Scope to term"
// @Param trainer_id query int false "Annotate with this trainer's assignment state"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/offered-subjects [get]
func (h *OfferingHandler) OfferedSubjects(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	termID, err := queryID(c, "term_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	trainerID, err := queryID(c, "trainer_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	offered, err := h.service.ListOfferedSubjects(c.Request.Context(), classID, termID, trainerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, offered, nil)
}

// Create godoc
// @Summary Offer a subject in a class for a term
// @Tags Offerings
// @Accept json
// @Produce json
// @Param id path int true "Class ID"
// @Param payload body dto.CreateOfferingRequest true "Offering payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /classes/{id}/offered-subjects [post]
func (h *OfferingHandler) Create(c *gin.Context) {
	classID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CreateOfferingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	offering, err := h.service.CreateOffering(c.Request.Context(), classID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, offering)
}

// Remove godoc
// @Summary Remove an offering and cascade its assignments
// @Tags Offerings
// @Produce json
// @Param id path int true "ClassSubject ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /class-subjects/{id} [delete]
func (h *OfferingHandler) Remove(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.RemoveOffering(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"message": "offering removed"}, nil)
}
