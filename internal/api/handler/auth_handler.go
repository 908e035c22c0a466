package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"weekboard/internal/api/middleware"
	"weekboard/internal/dto"
	"weekboard/internal/service"
	"weekboard/pkg/response"
)

// AuthHandler serves authentication and self-service endpoints.
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Register handles POST /api/v1/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid registration payload")
		return
	}

	account, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.Created(c, account)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid login payload")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid refresh payload")
		return
	}

	tokens, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Logout handles POST /api/v1/auth/logout. It revokes the presented
// access token for its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.CtxTokenJTI)
	exp, _ := c.Get(middleware.CtxTokenExp)
	expiresAt, _ := exp.(time.Time)

	if jti != "" && !expiresAt.IsZero() {
		if err := h.authSvc.Logout(c.Request.Context(), jti, expiresAt); err != nil {
			response.AppError(c, err)
			return
		}
	}
	response.OK(c, nil)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	account, err := h.authSvc.GetCurrentAccount(c.Request.Context(), id.AccountID)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, account)
}

// ChangePassword handles PUT /api/v1/auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Invalid(c, "invalid password payload")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), id.AccountID, &req); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}

// RequestReset handles POST /api/v1/auth/request-reset.
func (h *AuthHandler) RequestReset(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	if err := h.authSvc.RequestPasswordReset(c.Request.Context(), id.AccountID); err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, nil)
}
