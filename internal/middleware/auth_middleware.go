package middleware

import (
	"strings"

	"go-hris-payroll/internal/shared/response"
	"go-hris-payroll/internal/tenant"
	tenanterrors "go-hris-payroll/internal/tenant/errors"

	"github.com/gin-gonic/gin"
)

// Gin context keys populated by AuthMiddleware.
const (
	KeyCompanyID  = "company_id"
	KeyEmployeeID = "employee_id"
	KeyRole       = "role"
	keyIdentity   = "tenant_identity"
)

// AuthMiddleware resolves the bearer credential (or the access_token cookie)
// into a tenant.Identity. Requests without a resolvable identity never reach
// a handler.
func AuthMiddleware(resolver tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}
		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		id, err := resolver.Resolve(tokenString)
		if err != nil {
			response.AppError(c, err)
			c.Abort()
			return
		}

		c.Set(KeyCompanyID, id.CompanyID)
		c.Set(KeyEmployeeID, id.EmployeeID)
		c.Set(KeyRole, id.Role)
		c.Set(keyIdentity, id)
		c.Request = c.Request.WithContext(tenant.WithIdentity(c.Request.Context(), id))

		c.Next()
	}
}

// Identity returns the identity stored by AuthMiddleware.
func Identity(c *gin.Context) (tenant.Identity, bool) {
	v, ok := c.Get(keyIdentity)
	if !ok {
		return tenant.Identity{}, false
	}
	id, ok := v.(tenant.Identity)
	return id, ok
}

// RequireIdentity is Identity for handlers: when the identity is missing it
// writes the error response and returns false.
func RequireIdentity(c *gin.Context) (tenant.Identity, bool) {
	id, ok := Identity(c)
	if !ok {
		response.AppError(c, tenanterrors.ErrMissingContext)
		return tenant.Identity{}, false
	}
	return id, true
}

// SetIdentity is used by handler tests that bypass AuthMiddleware.
func SetIdentity(c *gin.Context, id tenant.Identity) {
	c.Set(KeyCompanyID, id.CompanyID)
	c.Set(KeyEmployeeID, id.EmployeeID)
	c.Set(KeyRole, id.Role)
	c.Set(keyIdentity, id)
}
