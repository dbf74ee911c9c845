package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"go-calypso/internal/domain"
)

const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (p.act == "*" || r.act == p.act)
`

// Resources guarded by the policy.
const (
	ResourceVisit        = "visit"
	ResourceEmployee     = "employee"
	ResourceBranch       = "branch"
	ResourcePlatformUser = "platform_user"
	ResourceList         = "managed_list"
)

// Actions.
const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionImport  = "import"
	ActionExit    = "exit"
	ActionApprove = "approve"
	ActionManage  = "*"
)

// Higher tiers inherit everything granted to the tier below.
var roleHierarchy = [][]string{
	{string(domain.RolePrimaryAdmin), string(domain.RoleAdmin)},
	{string(domain.RoleAdmin), string(domain.RoleStandard)},
}

var defaultPolicies = [][]string{
	{string(domain.RoleStandard), ResourceVisit, ActionRead},
	{string(domain.RoleStandard), ResourceVisit, ActionCreate},
	{string(domain.RoleStandard), ResourceVisit, ActionExit},
	{string(domain.RoleStandard), ResourceVisit, ActionApprove},
	{string(domain.RoleStandard), ResourceEmployee, ActionRead},
	{string(domain.RoleStandard), ResourceBranch, ActionRead},
	{string(domain.RoleStandard), ResourceList, ActionRead},

	{string(domain.RoleAdmin), ResourceEmployee, ActionManage},
	{string(domain.RoleAdmin), ResourceBranch, ActionManage},
	{string(domain.RoleAdmin), ResourceList, ActionManage},
	{string(domain.RoleAdmin), ResourcePlatformUser, ActionRead},

	{string(domain.RolePrimaryAdmin), ResourcePlatformUser, ActionManage},
}

// NewEnforcer builds an in-memory enforcer loaded with the role policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}
	if _, err := e.AddPolicies(defaultPolicies); err != nil {
		return nil, err
	}
	if _, err := e.AddGroupingPolicies(roleHierarchy); err != nil {
		return nil, err
	}
	return e, nil
}
