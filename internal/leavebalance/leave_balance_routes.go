package leavebalance

import (
	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	r.GET("/leave-balance", middleware.RBACAuthorize(rbacService, "leave_balance", "read"), h.GetMine)
}
