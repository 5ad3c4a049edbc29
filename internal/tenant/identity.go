package tenant

import (
	"context"
	"strings"
)

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "ADMIN"
	RoleHR         = "HR"
	RoleManager    = "MANAGER"
	RoleEmployee   = "EMPLOYEE"
)

// Identity is the verified caller: which tenant, which employee, which role.
// It is a value type; handlers pass it down unchanged.
type Identity struct {
	CompanyID  string
	EmployeeID string
	Role       string
}

// IsPrivileged reports whether the role may act on other employees' data
// inside its own tenant.
func (i Identity) IsPrivileged() bool {
	switch strings.ToUpper(i.Role) {
	case RoleSuperAdmin, RoleAdmin, RoleHR, RoleManager:
		return true
	default:
		return false
	}
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
