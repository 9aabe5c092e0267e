package authctx

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// Role is the fixed set of positions an employee can hold in a store.
type Role string

const (
	RoleOwner      Role = "OWNER"
	RoleManager    Role = "MANAGER"
	RoleTechnician Role = "TECHNICIAN"
	RoleCashier    Role = "CASHIER"
	RoleViewer     Role = "VIEWER"
)

// ParseRole normalises a role string, reporting whether it is one of the
// known roles.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(s))
	switch r {
	case RoleOwner, RoleManager, RoleTechnician, RoleCashier, RoleViewer:
		return r, true
	}
	return "", false
}

// Context is the verified actor identity carried into every service call:
// who is acting, which store they belong to, and as what role. It is built
// once per request from the bearer token and passed explicitly.
type Context struct {
	ActorID  uuid.UUID
	TenantID uuid.UUID
	Role     Role
}

type ctxKey struct{}

// With attaches the actor context to a request context.
func With(ctx context.Context, ac Context) context.Context {
	return context.WithValue(ctx, ctxKey{}, ac)
}

// From retrieves the actor context placed by the auth middleware.
func From(ctx context.Context) (Context, bool) {
	ac, ok := ctx.Value(ctxKey{}).(Context)
	return ac, ok
}
