package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin = "Admin"
	RolePMO   = "PMO"
)

const ActionUpdate = "update"

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// fieldPolicies is the static per-field permission table. Admin may bulk
// update every field; PMO is limited to direct manager and business
// group.
var fieldPolicies = [][]string{
	{RoleAdmin, "designation", ActionUpdate},
	{RoleAdmin, "grade", ActionUpdate},
	{RoleAdmin, "employee_type", ActionUpdate},
	{RoleAdmin, "shift_type", ActionUpdate},
	{RoleAdmin, "business_group", ActionUpdate},
	{RoleAdmin, "direct_manager", ActionUpdate},
	{RoleAdmin, "saral", ActionUpdate},
	{RolePMO, "direct_manager", ActionUpdate},
	{RolePMO, "business_group", ActionUpdate},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	CanUpdate(role, field string) (bool, error)
	// CanUpdateAny reports whether any of the actor's roles may update the
	// field.
	CanUpdateAny(roles []string, field string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
}

func NewService() (Service, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range fieldPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	return &service{enforcer: enforcer}, nil
}

func (s *service) CanUpdate(role, field string) (bool, error) {
	return s.enforcer.Enforce(role, field, ActionUpdate)
}

func (s *service) CanUpdateAny(roles []string, field string) (bool, error) {
	for _, role := range roles {
		allowed, err := s.CanUpdate(role, field)
		if err != nil {
			return false, err
		}
		if allowed {
			return true, nil
		}
	}
	return false, nil
}
