package app

import (
	"database/sql"
	"net/http"
	"time"

	"go-hris-payroll/internal/attendance"
	"go-hris-payroll/internal/config"
	"go-hris-payroll/internal/employee"
	"go-hris-payroll/internal/employeesalary"
	"go-hris-payroll/internal/leavebalance"
	"go-hris-payroll/internal/messaging/kafka"
	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/payroll"
	"go-hris-payroll/internal/rbac"
	"go-hris-payroll/internal/rbac/infra"
	"go-hris-payroll/internal/request"
	"go-hris-payroll/internal/shared/counter"
	"go-hris-payroll/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	attendanceRepo := attendance.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	requestRepo := request.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService, err := rbac.NewService(enforcer)
	if err != nil {
		return err
	}

	// --- Services ---
	attendanceService := attendance.NewService(db, attendanceRepo, cfg.Location())
	employeeService := employee.NewService(db, employeeRepo, counterRepo, outboxRepo)
	employeeSalaryService := employeesalary.NewService(db, employeeSalaryRepo)
	leaveLedger := leavebalance.NewLedger(leaveBalanceRepo)
	requestService := request.NewService(db, requestRepo, leaveLedger, outboxRepo)
	payrollService := payroll.NewService(db, payrollRepo, attendanceService, employeeSalaryService, outboxRepo)

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	employeeHandler := employee.NewHandler(employeeService)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveLedger)
	payrollHandler := payroll.NewHandler(payrollService)
	requestHandler := request.NewHandler(requestService)

	// --- Shared middleware ---
	idempotency := middleware.Idempotency(rdb)
	attendanceLimiter := middleware.RateLimitByEmployee(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RateLimitByIP(rate.Limit(cfg.IPRateLimit), cfg.IPRateLimitBurst),
		middleware.AuthMiddleware(tenant.NewResolver(cfg.JWTSecret)),
	)
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService, attendanceLimiter, idempotency)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		employeesalary.RegisterRoutes(api, employeeSalaryHandler, rbacService)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, idempotency)
		request.RegisterRoutes(api, requestHandler, rbacService)
	}

	return nil
}
