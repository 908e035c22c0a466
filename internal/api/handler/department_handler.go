package handler

import (
	"github.com/gin-gonic/gin"

	"weekboard/internal/dto"
	"weekboard/internal/service"
	"weekboard/pkg/response"
)

// DepartmentHandler serves the department endpoints.
type DepartmentHandler struct {
	deptSvc service.DepartmentService
}

// NewDepartmentHandler creates the DepartmentHandler.
func NewDepartmentHandler(deptSvc service.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc}
}

// List handles GET /api/v1/departments.
func (h *DepartmentHandler) List(c *gin.Context) {
	depts, err := h.deptSvc.List(c.Request.Context())
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, gin.H{"list": depts})
}

// Create handles POST /api/v1/departments.
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid department payload")
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Created(c, dept)
}

// Update handles PUT /api/v1/departments/:id.
func (h *DepartmentHandler) Update(c *gin.Context) {
	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid department payload")
		return
	}

	dept, err := h.deptSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, dept)
}

// Delete handles DELETE /api/v1/departments/:id.
func (h *DepartmentHandler) Delete(c *gin.Context) {
	if err := h.deptSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}
