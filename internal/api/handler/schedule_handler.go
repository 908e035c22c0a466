package handler

import (
	"github.com/gin-gonic/gin"

	"weekboard/internal/dto"
	"weekboard/internal/service"
	"weekboard/pkg/response"
)

// ScheduleHandler serves the schedule-entry endpoints.
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler creates the ScheduleHandler.
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// List handles GET /api/v1/schedules.
func (h *ScheduleHandler) List(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Invalid(c, "invalid query parameters")
		return
	}

	week, err := h.scheduleSvc.ListByWeek(c.Request.Context(), &req, id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, week)
}

// Create handles POST /api/v1/schedules.
func (h *ScheduleHandler) Create(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid schedule payload")
		return
	}

	entry, err := h.scheduleSvc.Create(c.Request.Context(), &req, id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Created(c, entry)
}

// Get handles GET /api/v1/schedules/:id.
func (h *ScheduleHandler) Get(c *gin.Context) {
	entry, err := h.scheduleSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, entry)
}

// Approve handles PATCH /api/v1/schedules/:id/approve.
func (h *ScheduleHandler) Approve(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Approve(c.Request.Context(), c.Param("id"), id); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}

// Cancel handles PATCH /api/v1/schedules/:id/cancel.
func (h *ScheduleHandler) Cancel(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Cancel(c.Request.Context(), c.Param("id"), id); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}

// Delete handles DELETE /api/v1/schedules/:id.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), c.Param("id"), id); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}
