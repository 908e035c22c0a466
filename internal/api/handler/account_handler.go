package handler

import (
	"github.com/gin-gonic/gin"

	"weekboard/internal/dto"
	"weekboard/internal/service"
	"weekboard/pkg/response"
)

// AccountHandler serves the administrative account endpoints.
type AccountHandler struct {
	accountSvc service.AccountService
}

// NewAccountHandler creates the AccountHandler.
func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// List handles GET /api/v1/admin/users.
func (h *AccountHandler) List(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.AccountListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Invalid(c, "invalid query parameters")
		return
	}

	accounts, total, err := h.accountSvc.List(c.Request.Context(), &req, id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OKPage(c, accounts, total, req.GetPage(), req.GetPageSize())
}

// Approve handles PATCH /api/v1/admin/users/:id/approve.
func (h *AccountHandler) Approve(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.accountSvc.Approve(c.Request.Context(), c.Param("id"), id); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}

// Update handles PUT /api/v1/admin/users/:id.
func (h *AccountHandler) Update(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid account payload")
		return
	}

	account, err := h.accountSvc.Update(c.Request.Context(), c.Param("id"), &req, id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, account)
}

// ResetPassword handles PATCH /api/v1/admin/users/:id/reset-password.
func (h *AccountHandler) ResetPassword(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	result, err := h.accountSvc.ResetPassword(c.Request.Context(), c.Param("id"), id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, result)
}

// Delete handles DELETE /api/v1/admin/users/:id.
func (h *AccountHandler) Delete(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.accountSvc.Delete(c.Request.Context(), c.Param("id"), id); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}

// ListActiveHosts handles GET /api/v1/active-users. It backs the host
// picker on the schedule form.
func (h *AccountHandler) ListActiveHosts(c *gin.Context) {
	hosts, err := h.accountSvc.ListActiveHosts(c.Request.Context())
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, gin.H{"list": hosts})
}
