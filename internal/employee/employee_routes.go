package employee

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
	employees := r.Group("/employees")
	{
		employees.GET("",
			middleware.RateLimitByEmployee(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetAll,
		)

		employees.GET("/:id",
			middleware.RateLimitByEmployee(3, 10),
			middleware.RBACAuthorize(rbacService, "employee", "read"),
			handler.GetByID,
		)

		employees.POST("",
			middleware.RateLimitByEmployee(0.5, 3),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			handler.Create,
		)

		employees.PUT("/:id/manager",
			middleware.RateLimitByEmployee(0.5, 3),
			middleware.RBACAuthorize(rbacService, "employee", "update"),
			handler.AssignManager,
		)
	}
}
