package employeesalary

import (
	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	salary := r.Group("/employees/:id/salary")
	{
		salary.GET("",
			middleware.RBACAuthorize(rbacService, "salary", "read"),
			handler.GetByEmployee,
		)
		salary.PUT("",
			middleware.RateLimitByEmployee(0.5, 3),
			middleware.RBACAuthorize(rbacService, "salary", "write"),
			handler.Upsert,
		)
	}
}
