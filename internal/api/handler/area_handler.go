package handler

import (
	"github.com/gin-gonic/gin"

	"weekboard/internal/dto"
	"weekboard/internal/service"
	"weekboard/pkg/response"
)

// AreaHandler serves the location (area/room) endpoints.
type AreaHandler struct {
	areaSvc service.AreaService
}

// NewAreaHandler creates the AreaHandler.
func NewAreaHandler(areaSvc service.AreaService) *AreaHandler {
	return &AreaHandler{areaSvc: areaSvc}
}

// List handles GET /api/v1/locations.
func (h *AreaHandler) List(c *gin.Context) {
	areas, err := h.areaSvc.List(c.Request.Context())
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, gin.H{"list": areas})
}

// Create handles POST /api/v1/locations.
func (h *AreaHandler) Create(c *gin.Context) {
	var req dto.CreateAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid area payload")
		return
	}

	area, err := h.areaSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Created(c, area)
}

// Delete handles DELETE /api/v1/locations/:id.
func (h *AreaHandler) Delete(c *gin.Context) {
	if err := h.areaSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}

// CreateRoom handles POST /api/v1/locations/:id/rooms.
func (h *AreaHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid room payload")
		return
	}

	room, err := h.areaSvc.CreateRoom(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Created(c, room)
}

// DeleteRoom handles DELETE /api/v1/rooms/:id.
func (h *AreaHandler) DeleteRoom(c *gin.Context) {
	if err := h.areaSvc.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}
