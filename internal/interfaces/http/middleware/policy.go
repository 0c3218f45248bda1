package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrm/backend/internal/domain/identity"
	"github.com/hrm/backend/internal/infrastructure/auth"
	"github.com/hrm/backend/internal/interfaces/http/dto"
)

// Requirement is what a caller must satisfy to perform one action on one
// resource. An empty role list admits any authenticated caller.
type Requirement struct {
	Roles        []identity.Role
	OwnerAllowed bool
}

// policyTable is the single source of authorization rules. Handlers do
// not hand-roll role checks; routes attach Require(resource, action).
// Ownership is matched against the member_id path or query parameter;
// actions on records looked up by their own ID verify ownership in the
// handler after the fetch.
var policyTable = map[string]Requirement{
	"members.create": {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"members.read":   {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},
	"members.list":   {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"members.update": {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"members.delete": {Roles: []identity.Role{identity.RoleAdmin}},

	"attendance.clock":   {OwnerAllowed: true},
	"attendance.read":    {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},
	"attendance.correct": {OwnerAllowed: true},
	"attendance.confirm": {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},

	"schedules.submit": {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},
	"schedules.read":   {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},
	"schedules.report": {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"calendar.read":    {},

	"projects.read":     {},
	"projects.write":    {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"projects.delete":   {Roles: []identity.Role{identity.RoleAdmin}},
	"positions.write":   {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"assignments.write": {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"workload.read":     {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"pl.write":          {Roles: []identity.Role{identity.RoleAdmin}},
	"pl.read":           {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"selfreports.write": {OwnerAllowed: true},
	"selfreports.read":  {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},

	"skills.read":         {},
	"skills.write":        {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},
	"memberskills.append": {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},
	"memberskills.read":   {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},
	"evaluations.write":   {Roles: []identity.Role{identity.RoleAdmin}},
	"evaluations.read":    {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},

	"invoices.generate": {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},
	"invoices.read":     {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},
	"invoices.send":     {Roles: []identity.Role{identity.RoleAdmin}},
	"closing.read":      {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},

	"contracts.read":  {Roles: []identity.Role{identity.RoleAdmin}},
	"contracts.write": {Roles: []identity.Role{identity.RoleAdmin}},

	"configs.read":  {Roles: []identity.Role{identity.RoleAdmin}},
	"configs.write": {Roles: []identity.Role{identity.RoleAdmin}},
	"tools.read":    {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}, OwnerAllowed: true},
	"tools.write":   {Roles: []identity.Role{identity.RoleAdmin, identity.RoleManager}},

	"audit.read": {Roles: []identity.Role{identity.RoleAdmin}},
}

// Policy looks up the requirement for resource.action. Unknown pairs
// return a deny-all requirement.
func Policy(resource, action string) (Requirement, bool) {
	req, ok := policyTable[resource+"."+action]
	return req, ok
}

// Require enforces the policy table entry for resource.action. Requests
// without a session are rejected 401; sessions failing the requirement
// are rejected 403.
func Require(resource, action string) gin.HandlerFunc {
	key := resource + "." + action
	return func(c *gin.Context) {
		session := GetSession(c)
		if session == nil {
			abortUnauthorized(c, "Authentication required")
			return
		}

		req, ok := policyTable[key]
		if !ok {
			abortForbidden(c)
			return
		}
		if allowed(c, session, req) {
			c.Next()
			return
		}
		abortForbidden(c)
	}
}

func allowed(c *gin.Context, session *auth.Session, req Requirement) bool {
	if req.OwnerAllowed && ownsTarget(c, session) {
		return true
	}
	if len(req.Roles) == 0 {
		return true
	}
	for _, role := range req.Roles {
		if session.Role == role {
			return true
		}
	}
	return false
}

// ownsTarget reports whether the member_id the request targets is the
// caller's own. Requests that never name a member target nothing.
func ownsTarget(c *gin.Context, session *auth.Session) bool {
	target := c.Param("member_id")
	if target == "" {
		target = c.Query("member_id")
	}
	if target == "" {
		return false
	}
	return target == session.MemberID.String()
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden,
		dto.NewErrorResponse(dto.ErrCodeForbidden, "You do not have permission to perform this action", GetRequestID(c)))
}
