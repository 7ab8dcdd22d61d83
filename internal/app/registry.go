package app

import (
	"net/http"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/middleware"
	"go-payroll/internal/payroll"
	"go-payroll/internal/salarystructure"
	"go-payroll/internal/shared/counter"
	"go-payroll/internal/statutory"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BuildRouter merakit seluruh modul HTTP. Urutan middleware global:
// request id dulu, lalu logger ber-konteks.
func (a *App) BuildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(a.Logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")

	employeeRepo := employee.NewRepository(a.DB)

	structureRepo := salarystructure.NewRepository(a.DB)
	structureService := salarystructure.NewService(a.SQLDB, structureRepo)
	salarystructure.RegisterRoutes(api, salarystructure.NewHandler(structureService), a.RBAC, a.Redis)

	attendanceRepo := attendance.NewRepository(a.DB)
	attendanceService := attendance.NewService(attendanceRepo, employeeRepo)
	attendance.RegisterRoutes(api, attendance.NewHandler(attendanceService), a.RBAC)

	payrollRepo := payroll.NewRepository(a.DB, a.SQLDB)
	payrollService := payroll.NewService(
		a.SQLDB,
		payrollRepo,
		employeeRepo,
		structureRepo,
		attendanceRepo,
		statutory.NewRepository(a.DB),
		counter.NewRepository(a.DB),
		kafka.NewOutboxRepository(a.SQLDB),
		payroll.NewLifecycle(a.RBAC),
		a.Logger,
	)
	payroll.RegisterRoutes(api, payroll.NewHandler(payrollService), a.RBAC, a.Redis)

	return router
}

// StructureService dipakai binary consumer tanpa perlu membangun router.
func (a *App) StructureService() salarystructure.Service {
	return salarystructure.NewService(a.SQLDB, salarystructure.NewRepository(a.DB))
}
