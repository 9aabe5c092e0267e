package ticket

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fixpointhq/fixpoint-backend/internal/modules/employee"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
)

// ── in-memory fakes ───────────────────────────────────────────────────────────

type fakeRepo struct {
	tickets   map[uuid.UUID]*Ticket
	notes     []*Note
	deleteErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tickets: map[uuid.UUID]*Ticket{}}
}

func (f *fakeRepo) Create(_ context.Context, t *Ticket) error {
	cp := *t
	f.tickets[t.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, storeID, id uuid.UUID) (*Ticket, error) {
	t, ok := f.tickets[id]
	if !ok || t.StoreID != storeID {
		return nil, sql.ErrNoRows
	}
	cp := *t
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, storeID uuid.UUID, fl ListFilter) ([]*Ticket, error) {
	var out []*Ticket
	for _, t := range f.tickets {
		if t.StoreID != storeID {
			continue
		}
		if fl.Status != "" && string(t.Status) != fl.Status {
			continue
		}
		if fl.TechnicianID != nil && (t.TechnicianID == nil || *t.TechnicianID != *fl.TechnicianID) {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepo) Update(_ context.Context, t *Ticket) error {
	cp := *t
	f.tickets[t.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, storeID, id uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.tickets, id)
	return nil
}

func (f *fakeRepo) CreateNote(_ context.Context, n *Note) error {
	cp := *n
	cp.CreatedAt = time.Now().UTC()
	f.notes = append(f.notes, &cp)
	return nil
}

func (f *fakeRepo) ListNotes(_ context.Context, storeID, ticketID uuid.UUID) ([]*Note, error) {
	var out []*Note
	for i := len(f.notes) - 1; i >= 0; i-- {
		n := f.notes[i]
		if n.StoreID == storeID && n.TicketID == ticketID {
			out = append(out, n)
		}
	}
	return out, nil
}

type fakeEmployees struct {
	employees map[uuid.UUID]*employee.Employee
}

func (f *fakeEmployees) Create(_ context.Context, e *employee.Employee) error {
	f.employees[e.ID] = e
	return nil
}

func (f *fakeEmployees) GetByID(_ context.Context, storeID, id uuid.UUID) (*employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok || e.StoreID != storeID {
		return nil, sql.ErrNoRows
	}
	return e, nil
}

func (f *fakeEmployees) ListActive(_ context.Context, storeID uuid.UUID) ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, e := range f.employees {
		if e.StoreID == storeID && e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployees) List(_ context.Context, storeID uuid.UUID) ([]*employee.Employee, error) {
	return f.ListActive(nil, storeID)
}

func (f *fakeEmployees) Deactivate(_ context.Context, storeID, id uuid.UUID) error {
	if e, ok := f.employees[id]; ok {
		e.IsActive = false
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeEmployees) {
	repo := newFakeRepo()
	emps := &fakeEmployees{employees: map[uuid.UUID]*employee.Employee{}}
	return NewService(repo, emps, zaptest.NewLogger(t)), repo, emps
}

func actor(role authctx.Role, tenant uuid.UUID) authctx.Context {
	return authctx.Context{ActorID: uuid.New(), TenantID: tenant, Role: role}
}

func mustCreate(t *testing.T, svc Service, ac authctx.Context) *Ticket {
	t.Helper()
	tk, err := svc.Create(context.Background(), ac, CreateTicketRequest{Title: "cracked screen"})
	require.NoError(t, err)
	return tk
}

func kindOf(t *testing.T, err error) apperror.Kind {
	t.Helper()
	require.Error(t, err)
	return apperror.As(err).Kind
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestCreateStartsReceived(t *testing.T) {
	svc, _, _ := newTestService(t)
	tenant := uuid.New()
	tk := mustCreate(t, svc, actor(authctx.RoleViewer, tenant))

	assert.Equal(t, StatusReceived, tk.Status)
	assert.Nil(t, tk.StartedAt)
	assert.Nil(t, tk.CompletedAt)
	assert.Nil(t, tk.CancelledAt)
}

func TestCreateRejectsNegativeEstimate(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Create(context.Background(), actor(authctx.RoleOwner, uuid.New()),
		CreateTicketRequest{Title: "x", EstimatedCost: -1})
	assert.Equal(t, apperror.KindValidation, kindOf(t, err))
}

func TestTransitionHappyPath(t *testing.T) {
	svc, _, _ := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleTechnician, tenant)
	tk := mustCreate(t, svc, ac)

	for _, next := range []Status{StatusInProgress, StatusAwaitingParts, StatusInProgress, StatusReady, StatusCompleted} {
		var err error
		tk, err = svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(next)})
		require.NoError(t, err, "transition to %s", next)
	}
	assert.Equal(t, StatusCompleted, tk.Status)
	assert.NotNil(t, tk.StartedAt)
	assert.NotNil(t, tk.CompletedAt)
	assert.Nil(t, tk.CancelledAt)
}

func TestTransitionDeniedForCashierAndViewer(t *testing.T) {
	svc, _, _ := newTestService(t)
	tenant := uuid.New()
	tk := mustCreate(t, svc, actor(authctx.RoleOwner, tenant))

	for _, role := range []authctx.Role{authctx.RoleCashier, authctx.RoleViewer} {
		_, err := svc.Transition(context.Background(), actor(role, tenant), tk.ID.String(),
			TransitionRequest{Status: string(StatusInProgress)})
		assert.Equal(t, apperror.KindDenied, kindOf(t, err), "role %s", role)
	}
}

func TestTransitionSameStatusIsNoOp(t *testing.T) {
	svc, repo, _ := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleManager, tenant)
	tk := mustCreate(t, svc, ac)

	tk, err := svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(StatusInProgress)})
	require.NoError(t, err)
	started := *tk.StartedAt

	again, err := svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(StatusInProgress)})
	require.NoError(t, err)
	require.NotNil(t, again.StartedAt)
	assert.True(t, started.Equal(*again.StartedAt))
	assert.Equal(t, StatusInProgress, repo.tickets[tk.ID].Status)
}

func TestStartedAtSetOnce(t *testing.T) {
	svc, _, _ := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleTechnician, tenant)
	tk := mustCreate(t, svc, ac)

	tk, err := svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(StatusInProgress)})
	require.NoError(t, err)
	started := *tk.StartedAt

	// Park on AWAITING_PARTS and resume: the original start must survive.
	_, err = svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(StatusAwaitingParts)})
	require.NoError(t, err)
	tk, err = svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(StatusInProgress)})
	require.NoError(t, err)
	assert.True(t, started.Equal(*tk.StartedAt))
}

func TestTerminalStatesBlockTransitions(t *testing.T) {
	svc, _, _ := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleOwner, tenant)

	tk := mustCreate(t, svc, ac)
	_, err := svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(StatusCancelled)})
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(StatusInProgress)})
	assert.Equal(t, apperror.KindConflict, kindOf(t, err))

	done := mustCreate(t, svc, ac)
	for _, next := range []Status{StatusInProgress, StatusReady, StatusCompleted} {
		_, err = svc.Transition(context.Background(), ac, done.ID.String(), TransitionRequest{Status: string(next)})
		require.NoError(t, err)
	}
	_, err = svc.Transition(context.Background(), ac, done.ID.String(), TransitionRequest{Status: string(StatusCancelled)})
	assert.Equal(t, apperror.KindConflict, kindOf(t, err))
}

func TestSkippingStatesIsConflict(t *testing.T) {
	svc, _, _ := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleManager, tenant)
	tk := mustCreate(t, svc, ac)

	_, err := svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(StatusCompleted)})
	assert.Equal(t, apperror.KindConflict, kindOf(t, err))
}

func TestDeleteCompletedIsConflict(t *testing.T) {
	svc, repo, _ := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleManager, tenant)
	tk := mustCreate(t, svc, ac)
	for _, next := range []Status{StatusInProgress, StatusReady, StatusCompleted} {
		_, err := svc.Transition(context.Background(), ac, tk.ID.String(), TransitionRequest{Status: string(next)})
		require.NoError(t, err)
	}

	err := svc.Delete(context.Background(), ac, tk.ID.String())
	assert.Equal(t, apperror.KindConflict, kindOf(t, err))
	assert.Contains(t, repo.tickets, tk.ID, "ticket must be unchanged after the failed delete")

	// Cancelled tickets can still be cleaned up.
	other := mustCreate(t, svc, ac)
	_, err = svc.Transition(context.Background(), ac, other.ID.String(), TransitionRequest{Status: string(StatusCancelled)})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), ac, other.ID.String()))
}

func TestCrossTenantLooksLikeNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	tk := mustCreate(t, svc, actor(authctx.RoleOwner, uuid.New()))

	intruder := actor(authctx.RoleOwner, uuid.New())
	_, err := svc.Get(context.Background(), intruder, tk.ID.String())
	assert.Equal(t, apperror.KindNotFound, kindOf(t, err))

	_, err = svc.Transition(context.Background(), intruder, tk.ID.String(), TransitionRequest{Status: string(StatusInProgress)})
	assert.Equal(t, apperror.KindNotFound, kindOf(t, err))
}

func TestAssignTechnician(t *testing.T) {
	svc, _, emps := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleManager, tenant)
	tk := mustCreate(t, svc, ac)

	tech := &employee.Employee{ID: uuid.New(), StoreID: tenant, Name: "Sam", Role: authctx.RoleTechnician, IsActive: true}
	emps.employees[tech.ID] = tech

	tk, err := svc.AssignTechnician(context.Background(), ac, tk.ID.String(), AssignRequest{TechnicianID: tech.ID.String()})
	require.NoError(t, err)
	require.NotNil(t, tk.TechnicianID)
	assert.Equal(t, tech.ID, *tk.TechnicianID)

	// Empty id clears the assignment.
	tk, err = svc.AssignTechnician(context.Background(), ac, tk.ID.String(), AssignRequest{})
	require.NoError(t, err)
	assert.Nil(t, tk.TechnicianID)
}

func TestAssignTechnicianFromAnotherStoreIsValidationError(t *testing.T) {
	svc, _, emps := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleManager, tenant)
	tk := mustCreate(t, svc, ac)

	stranger := &employee.Employee{ID: uuid.New(), StoreID: uuid.New(), Name: "Not ours", Role: authctx.RoleTechnician, IsActive: true}
	emps.employees[stranger.ID] = stranger

	_, err := svc.AssignTechnician(context.Background(), ac, tk.ID.String(), AssignRequest{TechnicianID: stranger.ID.String()})
	assert.Equal(t, apperror.KindValidation, kindOf(t, err))

	_, err = svc.AssignTechnician(context.Background(), ac, tk.ID.String(), AssignRequest{TechnicianID: uuid.New().String()})
	assert.Equal(t, apperror.KindValidation, kindOf(t, err))
}

func TestUpdateMonetaryFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleTechnician, tenant)
	tk := mustCreate(t, svc, ac)

	subtotal, tax, total := 100.0, 8.0, 108.0
	tk, err := svc.Update(context.Background(), ac, tk.ID.String(), UpdateTicketRequest{
		Subtotal: &subtotal, Tax: &tax, Total: &total,
	})
	require.NoError(t, err)
	assert.Equal(t, 108.0, tk.Total)

	negative := -5.0
	_, err = svc.Update(context.Background(), ac, tk.ID.String(), UpdateTicketRequest{Tax: &negative})
	assert.Equal(t, apperror.KindValidation, kindOf(t, err))
}

func TestAddNote(t *testing.T) {
	svc, _, _ := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleCashier, tenant)
	tk := mustCreate(t, svc, ac)

	n, err := svc.AddNote(context.Background(), ac, tk.ID.String(), AddNoteRequest{Body: "customer called"})
	require.NoError(t, err)
	assert.Equal(t, VisibilityInternal, n.Visibility, "visibility defaults to INTERNAL")
	assert.Equal(t, ac.ActorID, n.AuthorID)

	_, err = svc.AddNote(context.Background(), ac, tk.ID.String(), AddNoteRequest{Body: "ready for pickup", Visibility: "CUSTOMER"})
	require.NoError(t, err)

	notes, err := svc.ListNotes(context.Background(), ac, tk.ID.String())
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "ready for pickup", notes[0].Body, "newest note first")
}

func TestAddNoteDeniedForViewer(t *testing.T) {
	svc, _, _ := newTestService(t)
	tenant := uuid.New()
	tk := mustCreate(t, svc, actor(authctx.RoleOwner, tenant))

	_, err := svc.AddNote(context.Background(), actor(authctx.RoleViewer, tenant), tk.ID.String(),
		AddNoteRequest{Body: "sneaky"})
	assert.Equal(t, apperror.KindDenied, kindOf(t, err))
}

func TestListFilters(t *testing.T) {
	svc, _, emps := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleManager, tenant)

	tech := &employee.Employee{ID: uuid.New(), StoreID: tenant, Name: "Tess", Role: authctx.RoleTechnician, IsActive: true}
	emps.employees[tech.ID] = tech

	assigned := mustCreate(t, svc, ac)
	mustCreate(t, svc, ac)
	_, err := svc.AssignTechnician(context.Background(), ac, assigned.ID.String(), AssignRequest{TechnicianID: tech.ID.String()})
	require.NoError(t, err)
	_, err = svc.Transition(context.Background(), ac, assigned.ID.String(), TransitionRequest{Status: "IN_PROGRESS"})
	require.NoError(t, err)

	byStatus, err := svc.List(context.Background(), ac, "IN_PROGRESS", "")
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, assigned.ID, byStatus[0].ID)

	byTech, err := svc.List(context.Background(), ac, "", tech.ID.String())
	require.NoError(t, err)
	require.Len(t, byTech, 1)
	assert.Equal(t, assigned.ID, byTech[0].ID)

	_, err = svc.List(context.Background(), ac, "", "not-a-uuid")
	assert.Equal(t, apperror.KindValidation, kindOf(t, err))

	_, err = svc.List(context.Background(), ac, "HALF_DONE", "")
	assert.Equal(t, apperror.KindValidation, kindOf(t, err))
}

func TestDeleteMapsRepositoryErrors(t *testing.T) {
	svc, repo, _ := newTestService(t)
	tenant := uuid.New()
	ac := actor(authctx.RoleManager, tenant)
	tk := mustCreate(t, svc, ac)

	repo.deleteErr = sql.ErrNoRows
	err := svc.Delete(context.Background(), ac, tk.ID.String())
	assert.Equal(t, apperror.KindNotFound, kindOf(t, err))
}
