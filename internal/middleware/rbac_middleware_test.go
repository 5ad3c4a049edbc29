package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hris-payroll/internal/middleware"
	"go-hris-payroll/internal/rbac"
	"go-hris-payroll/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeEnforcer struct {
	allowed bool
	err     error
	got     rbac.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req rbac.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func serveRBAC(enforcer *fakeEnforcer, role string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payroll/confirm",
		func(c *gin.Context) {
			if role != "" {
				middleware.SetIdentity(c, tenant.Identity{CompanyID: "c1", EmployeeID: "e1", Role: role})
			}
			c.Next()
		},
		middleware.RBACAuthorize(enforcer, "payroll", "confirm"),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/payroll/confirm", nil))
	return w
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		enforcer := &fakeEnforcer{allowed: true}
		w := serveRBAC(enforcer, tenant.RoleHR)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, rbac.EnforceRequest{Role: tenant.RoleHR, Resource: "payroll", Action: "confirm"}, enforcer.got)
	})

	t.Run("denied", func(t *testing.T) {
		w := serveRBAC(&fakeEnforcer{}, tenant.RoleEmployee)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"required":"payroll:confirm"`)
	})

	t.Run("no identity", func(t *testing.T) {
		w := serveRBAC(&fakeEnforcer{allowed: true}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := serveRBAC(&fakeEnforcer{err: errors.New("policy store down")}, tenant.RoleHR)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "policy store down")
	})
}
