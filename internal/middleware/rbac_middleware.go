package middleware

import (
	"net/http"

	"go-hris-payroll/internal/rbac"
	"go-hris-payroll/internal/shared/apperror"
	"go-hris-payroll/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(req rbac.EnforceRequest) (bool, error)
}

func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(KeyRole)
		if role == "" {
			response.AppError(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		allowed, err := service.Enforce(rbac.EnforceRequest{
			Role:     role,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			response.AppError(c, err)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				apperror.ErrForbidden.Message, gin.H{"required": resource + ":" + action})
			c.Abort()
			return
		}
		c.Next()
	}
}
