package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Resources and actions checked before each client command
const (
	ResourceSession    = "session"
	ResourceOTP        = "otp"
	ResourceAttendance = "attendance"
	ResourceSchedule   = "schedule"

	ActionLogin    = "login"
	ActionLogout   = "logout"
	ActionWhoami   = "whoami"
	ActionGenerate = "generate"
	ActionEnd      = "end"
	ActionShow     = "show"
	ActionMark     = "mark"
	ActionHistory  = "history"
	ActionRead     = "read"
)

const modelText = `
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

// DefaultPolicies are the command permissions per role. "member" holds what
// every signed-in user may do.
var DefaultPolicies = [][]string{
	{"anonymous", ResourceSession, ActionLogin},
	{"member", ResourceSession, ActionLogout},
	{"member", ResourceSession, ActionWhoami},
	{"member", ResourceSchedule, ActionRead},
	{"teacher", ResourceOTP, ActionGenerate},
	{"teacher", ResourceOTP, ActionEnd},
	{"teacher", ResourceOTP, ActionShow},
	{"teacher", ResourceAttendance, ActionHistory},
	{"student", ResourceAttendance, ActionMark},
}

// DefaultRoleLinks make teachers and students members
var DefaultRoleLinks = [][]string{
	{"teacher", "member"},
	{"student", "member"},
}

// CasbinService holds the enforcer seeded with the command policies
type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer from the in-code model and seeds the
// default policies
func NewCasbinService() (*CasbinService, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	for _, p := range DefaultPolicies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("casbin policy %v: %w", p, err)
		}
	}
	for _, g := range DefaultRoleLinks {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, fmt.Errorf("casbin role link %v: %w", g, err)
		}
	}
	return &CasbinService{E: e}, nil
}
