package infra

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// roleModel is plain RBAC with role inheritance: a role holds every
// permission of the roles it inherits from.
const roleModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

func NewEnforcer() (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(roleModel)
	if err != nil {
		return nil, err
	}
	return casbin.NewSyncedEnforcer(m)
}
