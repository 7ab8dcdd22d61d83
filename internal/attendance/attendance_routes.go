package attendance

import (
	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	summaries := rg.Group("/attendance-summaries")
	summaries.Use(middleware.AuthMiddleware())
	{
		summaries.PUT("",
			middleware.RBACAuthorize(rbacService, "attendance", "write"),
			handler.Upsert,
		)
		summaries.GET("",
			middleware.RBACAuthorize(rbacService, "attendance", "read"),
			handler.GetAllByPeriod,
		)
	}
}
