package tenant_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-hris-payroll/internal/tenant"
	tenanterrors "go-hris-payroll/internal/tenant/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const testSecret = "resolver-test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return s
}

func validClaims(companyID, employeeID string) jwt.MapClaims {
	return jwt.MapClaims{
		"company_id":  companyID,
		"employee_id": employeeID,
		"role":        "hr",
		"exp":         time.Now().Add(time.Hour).Unix(),
	}
}

func TestResolver_Resolve(t *testing.T) {
	resolver := tenant.NewResolver(testSecret)
	companyID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("valid token", func(t *testing.T) {
		id, err := resolver.Resolve(signToken(t, testSecret, validClaims(companyID, employeeID)))

		assert.NoError(t, err)
		assert.Equal(t, companyID, id.CompanyID)
		assert.Equal(t, employeeID, id.EmployeeID)
		assert.Equal(t, tenant.RoleHR, id.Role)
		assert.True(t, id.IsPrivileged())
	})

	t.Run("missing credential", func(t *testing.T) {
		_, err := resolver.Resolve("  ")
		assert.True(t, errors.Is(err, tenanterrors.ErrUnauthenticated))
	})

	t.Run("malformed credential", func(t *testing.T) {
		_, err := resolver.Resolve("not-a-token")
		assert.True(t, errors.Is(err, tenanterrors.ErrUnauthenticated))
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims(companyID, employeeID)
		claims["exp"] = time.Now().Add(-time.Minute).Unix()

		_, err := resolver.Resolve(signToken(t, testSecret, claims))
		assert.True(t, errors.Is(err, tenanterrors.ErrForbidden))
	})

	t.Run("wrong signature", func(t *testing.T) {
		_, err := resolver.Resolve(signToken(t, "another-secret", validClaims(companyID, employeeID)))
		assert.True(t, errors.Is(err, tenanterrors.ErrForbidden))
	})

	t.Run("missing tenant claim", func(t *testing.T) {
		claims := validClaims(companyID, employeeID)
		delete(claims, "company_id")

		_, err := resolver.Resolve(signToken(t, testSecret, claims))
		assert.True(t, errors.Is(err, tenanterrors.ErrUnauthenticated))
	})
}

func TestIdentity_Context(t *testing.T) {
	_, ok := tenant.FromContext(context.Background())
	assert.False(t, ok)

	id := tenant.Identity{CompanyID: "c", EmployeeID: "e", Role: tenant.RoleEmployee}
	got, ok := tenant.FromContext(tenant.WithIdentity(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.False(t, got.IsPrivileged())
}
