package attendance

import (
	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/rbac"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the attendance endpoints on r, which must already
// run AuthMiddleware. limiter and idempotency guard the write endpoints.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, limiter, idempotency gin.HandlerFunc) {
	attendances := r.Group("/attendance")
	attendances.Use(limiter)
	{
		attendances.GET("", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.History)
		attendances.GET("/status", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Status)
		attendances.GET("/summary", middleware.RBACAuthorize(rbacService, "attendance", "read"), h.Summary)
		attendances.POST("/check-in", middleware.RBACAuthorize(rbacService, "attendance", "create"), idempotency, h.CheckIn)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, "attendance", "create"), h.CheckOut)
	}
}
