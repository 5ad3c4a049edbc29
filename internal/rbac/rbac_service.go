package rbac

import (
	"strings"

	"go-hris-payroll/internal/tenant"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

// roleInheritance lists child -> parent: the child gets every permission the
// parent has.
var roleInheritance = [][]string{
	{tenant.RoleSuperAdmin, tenant.RoleAdmin},
	{tenant.RoleAdmin, tenant.RoleHR},
	{tenant.RoleHR, tenant.RoleManager},
	{tenant.RoleManager, tenant.RoleEmployee},
}

var defaultPolicies = [][]string{
	{tenant.RoleEmployee, "attendance", "create"},
	{tenant.RoleEmployee, "attendance", "read"},
	{tenant.RoleEmployee, "request", "create"},
	{tenant.RoleEmployee, "request", "read"},
	{tenant.RoleEmployee, "request", "update"},
	{tenant.RoleEmployee, "request", "cancel"},
	{tenant.RoleEmployee, "leave_balance", "read"},

	{tenant.RoleManager, "request", "approve"},
	{tenant.RoleManager, "employee", "read"},

	{tenant.RoleHR, "employee", "create"},
	{tenant.RoleHR, "employee", "update"},
	{tenant.RoleHR, "salary", "read"},
	{tenant.RoleHR, "salary", "write"},
	{tenant.RoleHR, "payroll", "read"},
	{tenant.RoleHR, "payroll", "preview"},
	{tenant.RoleHR, "payroll", "confirm"},
}

type service struct {
	enforcer *casbin.SyncedEnforcer
	logger   *zap.Logger
}

// NewService loads the default role policy into enforcer.
func NewService(enforcer *casbin.SyncedEnforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	if _, err := enforcer.AddGroupingPolicies(roleInheritance); err != nil {
		return nil, err
	}
	if _, err := enforcer.AddPolicies(defaultPolicies); err != nil {
		return nil, err
	}
	l.Info("rbac policy loaded",
		zap.Int("roles", len(roleInheritance)+1),
		zap.Int("permissions", len(defaultPolicies)),
	)

	return &service{enforcer: enforcer, logger: l}, nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	role := strings.ToUpper(strings.TrimSpace(req.Role))
	allowed, err := s.enforcer.Enforce(role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
