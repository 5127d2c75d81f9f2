package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushub/scheduling-api/internal/dto"
	"github.com/campushub/scheduling-api/internal/service"
	appErrors "github.com/campushub/scheduling-api/pkg/errors"
	"github.com/campushub/scheduling-api/pkg/response"
)

// AssignmentHandler exposes trainer assignment endpoints.
type AssignmentHandler struct {
	service *service.AssignmentService
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// SetSubjectAssignment godoc
// @Summary Set a trainer's subject assignment
// @Description Creates, toggles, or repoints the single assignment row per (trainer, subject, term)
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path int true "Trainer ID"
// @Param payload body dto.SetSubjectAssignmentRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /trainers/{id}/subject-assignment [put]
func (h *AssignmentHandler) SetSubjectAssignment(c *gin.Context) {
	trainerID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.SetSubjectAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	result, err := h.service.SetSubjectAssignment(c.Request.Context(), trainerID, req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListSubjectAssignments godoc
// @Summary List a trainer's active subject assignments
// @Tags Assignments
// @Produce json
// @Param id path int true "Trainer ID"
// @Success 200 {object} response.Envelope
// @Router /trainers/{id}/subject-assignments [get]
func (h *AssignmentHandler) ListSubjectAssignments(c *gin.Context) {
	trainerID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	details, err := h.service.ListSubjectAssignments(c.Request.Context(), trainerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}

// AssignClass godoc
// @Summary Assign a trainer to a class
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path int true "Trainer ID"
// @Param payload body dto.AssignClassRequest true "Class link payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /trainers/{id}/classes [post]
func (h *AssignmentHandler) AssignClass(c *gin.Context) {
	trainerID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AssignClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if req.ClassID <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "class_id must be a positive integer"))
		return
	}
	assignment, err := h.service.AssignClass(c.Request.Context(), trainerID, req.ClassID, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// RemoveClassAssignment godoc
// @Summary Remove a trainer's class assignment
// @Description Deactivates the link and reports preserved attendance rows
// @Tags Assignments
// @Produce json
// @Param id path int true "Trainer ID"
// @Param classId path int true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /trainers/{id}/classes/{classId} [delete]
func (h *AssignmentHandler) RemoveClassAssignment(c *gin.Context) {
	trainerID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	classID, err := pathID(c, "classId")
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.service.RemoveClassAssignment(c.Request.Context(), trainerID, classID, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
