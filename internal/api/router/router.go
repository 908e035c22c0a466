package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"weekboard/config"
	"weekboard/internal/access"
	"weekboard/internal/api/handler"
	"weekboard/internal/api/middleware"
	"weekboard/pkg/jwt"
	"weekboard/pkg/redis"
)

// Setup builds the Gin engine with all routes wired.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Import.MaxUploadBytes + 1<<20))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// Anonymous surface. Login and register carry a tighter rate
		// limit to slow credential stuffing.
		v1.POST("/register", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Register)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)
			authorized.POST("/auth/request-reset", h.Auth.RequestReset)

			schedules := authorized.Group("/schedules")
			{
				schedules.GET("", h.Schedule.List)
				schedules.POST("", h.Schedule.Create)
				schedules.GET("/:id", h.Schedule.Get)
				schedules.PATCH("/:id/approve", middleware.Require(access.OpScheduleApprove), h.Schedule.Approve)
				// Cancel and delete are owner-conditional; the service
				// decides per entry.
				schedules.PATCH("/:id/cancel", h.Schedule.Cancel)
				schedules.DELETE("/:id", h.Schedule.Delete)
			}

			locations := authorized.Group("/locations")
			{
				locations.GET("", h.Area.List)
				locations.POST("", middleware.Require(access.OpRefDataManage), h.Area.Create)
				locations.DELETE("/:id", middleware.Require(access.OpRefDataManage), h.Area.Delete)
				locations.POST("/:id/rooms", middleware.Require(access.OpRefDataManage), h.Area.CreateRoom)
			}
			authorized.DELETE("/rooms/:id", middleware.Require(access.OpRefDataManage), h.Area.DeleteRoom)

			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.List)
				departments.POST("", middleware.Require(access.OpRefDataManage), h.Department.Create)
				departments.PUT("/:id", middleware.Require(access.OpRefDataManage), h.Department.Update)
				departments.DELETE("/:id", middleware.Require(access.OpRefDataManage), h.Department.Delete)
			}

			admin := authorized.Group("/admin/users")
			{
				admin.GET("", middleware.Require(access.OpAccountApprove), h.Account.List)
				admin.PATCH("/:id/approve", middleware.Require(access.OpAccountApprove), h.Account.Approve)
				admin.PATCH("/:id/reset-password", middleware.Require(access.OpAccountReset), h.Account.ResetPassword)
				// Update allows self-service edits; the service rejects
				// what the caller may not change.
				admin.PUT("/:id", h.Account.Update)
				admin.DELETE("/:id", middleware.Require(access.OpAccountDelete), h.Account.Delete)
			}

			authorized.GET("/active-users", h.Account.ListActiveHosts)

			authorized.POST("/import/schedules", h.Import.Schedules)
			authorized.GET("/export/schedules.xlsx", h.Export.Excel)
			authorized.GET("/export/schedules.ics", h.Export.ICS)
		}
	}

	return r
}
