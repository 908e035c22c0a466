package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"weekboard/internal/access"
	"weekboard/pkg/jwt"
	"weekboard/pkg/redis"
	"weekboard/pkg/response"
)

// Context keys populated by JWTAuth.
const (
	CtxAccountID  = "account_id"
	CtxEmail      = "email"
	CtxName       = "name"
	CtxRole       = "role"
	CtxDepartment = "department"
	CtxTokenJTI   = "token_jti"
	CtxTokenExp   = "token_exp"
)

// JWTAuth validates the Authorization: Bearer <token> header and
// injects the verified identity into the context. rdb may be nil;
// revocation checks then degrade to expiry-only.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "token invalid or expired")
			c.Abort()
			return
		}
		if claims.TokenType != "access" {
			response.Unauthorized(c, "invalid token type")
			c.Abort()
			return
		}

		if rdb != nil {
			revoked, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && revoked {
				response.Unauthorized(c, "token revoked")
				c.Abort()
				return
			}
		}

		c.Set(CtxAccountID, claims.AccountID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxName, claims.Name)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxDepartment, claims.Department)
		c.Set(CtxTokenJTI, claims.ID)
		if claims.ExpiresAt != nil {
			c.Set(CtxTokenExp, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// Require gates a route on one capability. Unknown roles fail closed.
func Require(op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(CtxRole)
		if !exists {
			response.Unauthorized(c, "not authenticated")
			c.Abort()
			return
		}

		if !access.Can(access.Role(role.(string)), op) {
			response.Forbidden(c, "insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
