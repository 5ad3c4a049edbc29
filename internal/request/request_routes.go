package request

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
	requests := r.Group("/requests")
	{
		requests.GET("", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetAll)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, "request", "read"), handler.GetByID)
		requests.POST("", middleware.RBACAuthorize(rbacService, "request", "create"), handler.Create)
		requests.PUT("/:id", middleware.RBACAuthorize(rbacService, "request", "update"), handler.Update)
		requests.PUT("/:id/status", middleware.RBACAuthorize(rbacService, "request", "approve"), handler.UpdateStatus)
		requests.PUT("/:id/cancel", middleware.RBACAuthorize(rbacService, "request", "cancel"), handler.Cancel)
	}
}
