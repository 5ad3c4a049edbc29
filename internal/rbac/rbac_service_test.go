package rbac_test

import (
	"testing"

	"go-hris-payroll/internal/rbac"
	"go-hris-payroll/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestService_Enforce(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee checks in", "EMPLOYEE", "attendance", "create", true},
		{"employee cannot confirm payroll", "EMPLOYEE", "payroll", "confirm", false},
		{"employee cannot approve", "EMPLOYEE", "request", "approve", false},
		{"manager approves", "MANAGER", "request", "approve", true},
		{"manager inherits employee", "MANAGER", "attendance", "create", true},
		{"manager cannot preview payroll", "MANAGER", "payroll", "preview", false},
		{"hr confirms payroll", "HR", "payroll", "confirm", true},
		{"admin inherits hr", "ADMIN", "salary", "write", true},
		{"role is case insensitive", "hr", "payroll", "preview", true},
		{"unknown role", "GUEST", "attendance", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(rbac.EnforceRequest{Role: tc.role, Resource: tc.resource, Action: tc.action})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
