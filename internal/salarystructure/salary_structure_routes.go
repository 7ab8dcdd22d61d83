package salarystructure

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService, rdb *redis.Client) {
	structures := rg.Group("/salary-structures")
	structures.Use(middleware.AuthMiddleware())
	{
		structures.POST("",
			middleware.RBACAuthorize(rbacService, "salary_structure", "write"),
			middleware.Idempotency(rdb),
			handler.Create,
		)
		structures.GET("",
			middleware.RBACAuthorize(rbacService, "salary_structure", "read"),
			handler.GetAll,
		)
		structures.GET("/:id",
			middleware.RBACAuthorize(rbacService, "salary_structure", "read"),
			handler.GetById,
		)
		structures.PUT("/:id",
			middleware.RBACAuthorize(rbacService, "salary_structure", "write"),
			middleware.Idempotency(rdb),
			handler.Update,
		)
	}
}
