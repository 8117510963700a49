// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package accesscontrol

import (
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/utils"
	"github.com/pkg/errors"
)

var ErrForbidden = errors.New("forbidden")

type Object string

const (
	ObjectReport     Object = "report"
	ObjectReportList Object = "reportList"
	ObjectOwnReport  Object = "ownReport"
	ObjectAuditQueue Object = "auditQueue"
	ObjectAssignment Object = "assignment"
	ObjectFeedback   Object = "feedback"
	ObjectResolution Object = "resolution"
	ObjectCompliance Object = "compliance"
	ObjectStandard   Object = "standard"
	ObjectStats      Object = "stats"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
)

const rbacModel = `
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

type permission struct {
	object  Object
	actions []Action
}

// policies mirrors the role checks of the backend. A request that is
// refused here would be refused by the backend with a 403 anyway.
var policies = map[dtos.Role][]permission{
	dtos.RoleReporter: {
		{ObjectOwnReport, []Action{ActionRead}},
		{ObjectReport, []Action{ActionCreate}},
	},
	dtos.RoleAdmin: {
		{ObjectReport, []Action{ActionCreate, ActionRead, ActionUpdate}},
		{ObjectReportList, []Action{ActionRead}},
		{ObjectAssignment, []Action{ActionRead}},
		{ObjectFeedback, []Action{ActionCreate, ActionRead}},
		{ObjectResolution, []Action{ActionCreate, ActionRead}},
		{ObjectStats, []Action{ActionRead}},
	},
	dtos.RoleAuditor: {
		{ObjectReport, []Action{ActionRead}},
		{ObjectAuditQueue, []Action{ActionRead}},
		{ObjectFeedback, []Action{ActionRead}},
		{ObjectResolution, []Action{ActionRead}},
		{ObjectCompliance, []Action{ActionCreate, ActionRead}},
		{ObjectStandard, []Action{ActionRead}},
		{ObjectStats, []Action{ActionRead}},
	},
}

type AccessControl interface {
	IsAllowed(role dtos.Role, object Object, action Action) (bool, error)
	Check(role dtos.Role, object Object, action Action) error
}

var _ AccessControl = &casbinRBAC{}

type casbinRBAC struct {
	enforcer *casbin.SyncedEnforcer
}

func roleName(role dtos.Role) string {
	return "role::" + strings.ToLower(string(role))
}

func NewCasbinRBAC() (*casbinRBAC, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse rbac model")
	}
	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, errors.Wrap(err, "could not create enforcer")
	}

	rbac := &casbinRBAC{enforcer: e}
	for role, permissions := range policies {
		for _, p := range permissions {
			if err := rbac.AllowRole(role, p.object, p.actions); err != nil {
				return nil, err
			}
		}
	}
	// a superadmin is an admin
	if err := rbac.InheritRole(dtos.RoleSuperadmin, dtos.RoleAdmin); err != nil {
		return nil, err
	}
	return rbac, nil
}

func (c *casbinRBAC) AllowRole(role dtos.Role, object Object, actions []Action) error {
	policies := utils.Map(actions, func(a Action) []string {
		return []string{roleName(role), "obj::" + string(object), "act::" + string(a)}
	})
	_, err := c.enforcer.AddPolicies(policies)
	return errors.Wrap(err, "could not add policies")
}

func (c *casbinRBAC) InheritRole(roleWhichGetsPermissions, roleWhichProvidesPermissions dtos.Role) error {
	_, err := c.enforcer.AddRoleForUser(roleName(roleWhichGetsPermissions), roleName(roleWhichProvidesPermissions))
	return errors.Wrap(err, "could not inherit role")
}

func (c *casbinRBAC) IsAllowed(role dtos.Role, object Object, action Action) (bool, error) {
	if role == "" {
		return false, nil
	}
	return c.enforcer.Enforce(roleName(role), "obj::"+string(object), "act::"+string(action))
}

// Check returns ErrForbidden unless role may perform action on object.
func (c *casbinRBAC) Check(role dtos.Role, object Object, action Action) error {
	allowed, err := c.IsAllowed(role, object, action)
	if err != nil {
		return errors.Wrap(err, "could not evaluate policy")
	}
	if !allowed {
		return errors.Wrapf(ErrForbidden, "role %q may not %s %s", role, action, object)
	}
	return nil
}
