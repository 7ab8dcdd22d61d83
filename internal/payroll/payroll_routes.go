package payroll

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	payrolls := rg.Group("/payrolls")
	payrolls.Use(middleware.AuthMiddleware())
	{
		// Generate dibatasi per user: satu batch bisa menyentuh ribuan baris.
		payrolls.POST("/generate",
			middleware.RBACAuthorize(rbacService, "payroll", "generate"),
			middleware.RateLimitByUser(rate.Limit(1), 3),
			middleware.Idempotency(rdb),
			handler.GenerateBatch,
		)

		payrolls.POST("/:id/transition",
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.Transition,
		)
		payrolls.POST("/bulk-transition",
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			middleware.Idempotency(rdb),
			handler.BulkTransition,
		)
		payrolls.POST("/:id/supersede",
			middleware.RBACAuthorize(rbacService, "payroll", "generate"),
			handler.Supersede,
		)

		payrolls.GET("",
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAll,
		)
		payrolls.GET("/export",
			middleware.RBACAuthorize(rbacService, "payroll", "export"),
			handler.ExportRegister,
		)
		payrolls.GET("/:id",
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetById,
		)
	}
}
