package payroll

import (
	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	idempotency gin.HandlerFunc,
) {
	payroll := r.Group("/payroll")
	{
		payroll.POST("/preview", middleware.RBACAuthorize(rbacService, "payroll", "preview"), handler.Preview)
		payroll.POST(
			"/confirm",
			idempotency,
			middleware.RBACAuthorize(rbacService, "payroll", "confirm"),
			handler.Confirm,
		)
		payroll.GET("/history", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.History)
		payroll.GET("/periods/:year/:month/items", middleware.RBACAuthorize(rbacService, "payroll", "read"), handler.PeriodItems)
	}
}
