package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
)

func actorWith(role authctx.Role, tenant uuid.UUID) authctx.Context {
	return authctx.Context{ActorID: uuid.New(), TenantID: tenant, Role: role}
}

func TestRoleMatrix(t *testing.T) {
	tenant := uuid.New()

	cases := []struct {
		action  Action
		allowed []authctx.Role
	}{
		{ActionManageCategory, []authctx.Role{authctx.RoleOwner, authctx.RoleManager}},
		{ActionManageStock, []authctx.Role{authctx.RoleOwner, authctx.RoleManager}},
		{ActionAdjustStock, []authctx.Role{authctx.RoleOwner, authctx.RoleManager}},
		{ActionManageEmployee, []authctx.Role{authctx.RoleOwner, authctx.RoleManager}},
		{ActionReadEmployee, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician, authctx.RoleCashier, authctx.RoleViewer}},
		{ActionCreateTicket, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician, authctx.RoleCashier, authctx.RoleViewer}},
		{ActionUpdateTicket, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician}},
		{ActionAssignTechnician, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician}},
		{ActionDeleteTicket, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician}},
		{ActionReadTicket, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician, authctx.RoleCashier, authctx.RoleViewer}},
		{ActionAddTicketNote, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician, authctx.RoleCashier}},
		{ActionCreateSale, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleCashier}},
		{ActionReadSale, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician, authctx.RoleCashier, authctx.RoleViewer}},
		{ActionCreateRefund, []authctx.Role{authctx.RoleOwner, authctx.RoleManager}},
		{ActionManageStore, []authctx.Role{authctx.RoleOwner}},
		{ActionReadStock, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician, authctx.RoleCashier, authctx.RoleViewer}},
		{ActionReadCategory, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician, authctx.RoleCashier, authctx.RoleViewer}},
		{ActionPunchClock, []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician, authctx.RoleCashier, authctx.RoleViewer}},
		{ActionViewTimeClock, []authctx.Role{authctx.RoleOwner, authctx.RoleManager}},
	}

	all := []authctx.Role{authctx.RoleOwner, authctx.RoleManager, authctx.RoleTechnician, authctx.RoleCashier, authctx.RoleViewer}
	for _, tc := range cases {
		allowed := map[authctx.Role]bool{}
		for _, r := range tc.allowed {
			allowed[r] = true
		}
		for _, role := range all {
			err := Authorize(actorWith(role, tenant), tc.action, tenant)
			if allowed[role] {
				assert.Nil(t, err, "%s should be allowed to %s", role, tc.action)
			} else {
				require.NotNil(t, err, "%s should be denied %s", role, tc.action)
				assert.Equal(t, apperror.KindDenied, err.Kind)
			}
		}
	}
}

func TestCrossTenantReportsNotFound(t *testing.T) {
	// Even the owner of store A must see store B's resources as missing,
	// regardless of role permissions on the action.
	actor := actorWith(authctx.RoleOwner, uuid.New())
	err := Authorize(actor, ActionManageStore, uuid.New())
	require.NotNil(t, err)
	assert.Equal(t, apperror.KindNotFound, err.Kind)
}

func TestUnknownActionFailsClosed(t *testing.T) {
	tenant := uuid.New()
	err := Authorize(actorWith(authctx.RoleOwner, tenant), Action("reboot the universe"), tenant)
	require.NotNil(t, err)
	assert.Equal(t, apperror.KindDenied, err.Kind)
}
