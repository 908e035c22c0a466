package handler

import (
	"github.com/gin-gonic/gin"

	"weekboard/internal/access"
	"weekboard/internal/api/middleware"
	"weekboard/internal/service"
	"weekboard/pkg/response"
)

// MustGetIdentity rebuilds the caller identity injected by JWTAuth.
// On failure it writes a 401 and returns ok=false; the caller should
// return immediately.
func MustGetIdentity(c *gin.Context) (service.Identity, bool) {
	id := service.Identity{
		AccountID:  c.GetString(middleware.CtxAccountID),
		Email:      c.GetString(middleware.CtxEmail),
		Name:       c.GetString(middleware.CtxName),
		Role:       access.Role(c.GetString(middleware.CtxRole)),
		Department: c.GetString(middleware.CtxDepartment),
	}
	if id.AccountID == "" || id.Email == "" {
		response.Unauthorized(c, "not authenticated")
		return service.Identity{}, false
	}
	return id, true
}
