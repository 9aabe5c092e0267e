package stock

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/fixpointhq/fixpoint-backend/internal/modules/category"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
)

// ── in-memory fakes ───────────────────────────────────────────────────────────

type fakeRepo struct {
	items     map[uuid.UUID]*StockItem
	movements []*Movement
}

func newFakeRepo() *fakeRepo { return &fakeRepo{items: map[uuid.UUID]*StockItem{}} }

func (f *fakeRepo) CreateItem(_ context.Context, i *StockItem) error {
	cp := *i
	f.items[i.ID] = &cp
	return nil
}

func (f *fakeRepo) GetItem(_ context.Context, storeID, id uuid.UUID) (*StockItem, error) {
	i, ok := f.items[id]
	if !ok || i.StoreID != storeID {
		return nil, sql.ErrNoRows
	}
	cp := *i
	return &cp, nil
}

func (f *fakeRepo) ListItems(_ context.Context, storeID uuid.UUID) ([]*StockItem, error) {
	var out []*StockItem
	for _, i := range f.items {
		if i.StoreID == storeID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRepo) UpdateItem(_ context.Context, i *StockItem) error {
	cp := *i
	f.items[i.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteItem(_ context.Context, storeID, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeRepo) Adjust(_ context.Context, m *Movement, allowNegative bool) (*StockItem, error) {
	item, ok := f.items[m.ItemID]
	if !ok || item.StoreID != m.StoreID {
		return nil, sql.ErrNoRows
	}
	newQty := item.QuantityOnHand + m.QuantityChange
	if newQty < 0 && !allowNegative {
		return nil, ErrInsufficientStock
	}
	cp := *m
	cp.CreatedAt = time.Now().UTC()
	f.movements = append(f.movements, &cp)
	item.QuantityOnHand = newQty
	res := *item
	return &res, nil
}

func (f *fakeRepo) ListRecentMovements(_ context.Context, storeID, itemID uuid.UUID, limit int) ([]*Movement, error) {
	var out []*Movement
	for i := len(f.movements) - 1; i >= 0 && len(out) < limit; i-- {
		m := f.movements[i]
		if m.StoreID == storeID && m.ItemID == itemID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCategories struct {
	categories map[uuid.UUID]*category.Category
}

func (f *fakeCategories) Create(_ context.Context, c *category.Category) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategories) GetByID(_ context.Context, storeID, id uuid.UUID) (*category.Category, error) {
	c, ok := f.categories[id]
	if !ok || c.StoreID != storeID {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeCategories) List(_ context.Context, storeID uuid.UUID) ([]*category.Category, error) {
	return nil, nil
}

func (f *fakeCategories) Update(_ context.Context, c *category.Category) error { return nil }

func (f *fakeCategories) Delete(_ context.Context, storeID, id uuid.UUID) error { return nil }

// ── helpers ───────────────────────────────────────────────────────────────────

func newTestService(t *testing.T, allowNegative bool) (Service, *fakeRepo, *fakeCategories) {
	repo := newFakeRepo()
	cats := &fakeCategories{categories: map[uuid.UUID]*category.Category{}}
	return NewService(repo, cats, allowNegative, zaptest.NewLogger(t)), repo, cats
}

func actor(role authctx.Role, tenant uuid.UUID) authctx.Context {
	return authctx.Context{ActorID: uuid.New(), TenantID: tenant, Role: role}
}

func mustCreateItem(t *testing.T, svc Service, ac authctx.Context, qty int) *StockItem {
	t.Helper()
	item, err := svc.CreateItem(context.Background(), ac, CreateItemRequest{
		SKU: "SCRN-" + uuid.New().String()[:8], Name: "replacement screen", Quantity: qty,
	})
	require.NoError(t, err)
	return item
}

func kindOf(t *testing.T, err error) apperror.Kind {
	t.Helper()
	require.Error(t, err)
	return apperror.As(err).Kind
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestLedgerReconstructsQuantity(t *testing.T) {
	svc, repo, _ := newTestService(t, true)
	tenant := uuid.New()
	ac := actor(authctx.RoleManager, tenant)
	item := mustCreateItem(t, svc, ac, 50)

	deltas := []int{-3, 10, -7, -12, 5}
	for _, d := range deltas {
		_, err := svc.Adjust(context.Background(), ac, item.ID.String(), AdjustRequest{QuantityChange: d})
		require.NoError(t, err)
	}

	sum := 0
	count := 0
	for _, m := range repo.movements {
		if m.ItemID == item.ID {
			sum += m.QuantityChange
			count++
		}
	}
	assert.Equal(t, len(deltas), count, "one movement per adjustment")
	assert.Equal(t, 50+sum, repo.items[item.ID].QuantityOnHand,
		"quantity on hand must equal initial quantity plus the ledger sum")
}

func TestAdjustDefaultsToAdjustmentReason(t *testing.T) {
	svc, repo, _ := newTestService(t, true)
	ac := actor(authctx.RoleOwner, uuid.New())
	item := mustCreateItem(t, svc, ac, 5)

	_, err := svc.Adjust(context.Background(), ac, item.ID.String(), AdjustRequest{QuantityChange: -1})
	require.NoError(t, err)
	require.Len(t, repo.movements, 1)
	assert.Equal(t, ReasonAdjustment, repo.movements[0].Reason)
	assert.Equal(t, ac.ActorID, repo.movements[0].RecordedBy)
}

func TestAdjustRejectsZeroAndUnknownReason(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	ac := actor(authctx.RoleOwner, uuid.New())
	item := mustCreateItem(t, svc, ac, 5)

	_, err := svc.Adjust(context.Background(), ac, item.ID.String(), AdjustRequest{QuantityChange: 0})
	assert.Equal(t, apperror.KindValidation, kindOf(t, err))

	_, err = svc.Adjust(context.Background(), ac, item.ID.String(), AdjustRequest{QuantityChange: 1, Reason: "SHRINKAGE"})
	assert.Equal(t, apperror.KindValidation, kindOf(t, err))
}

func TestAdjustDeniedForCashier(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	tenant := uuid.New()
	item := mustCreateItem(t, svc, actor(authctx.RoleManager, tenant), 5)

	_, err := svc.Adjust(context.Background(), actor(authctx.RoleCashier, tenant), item.ID.String(),
		AdjustRequest{QuantityChange: -1})
	assert.Equal(t, apperror.KindDenied, kindOf(t, err))
}

func TestNegativeStockAllowedByDefaultPolicy(t *testing.T) {
	svc, repo, _ := newTestService(t, true)
	ac := actor(authctx.RoleManager, uuid.New())
	item := mustCreateItem(t, svc, ac, 2)

	detail, err := svc.Adjust(context.Background(), ac, item.ID.String(), AdjustRequest{QuantityChange: -5, Reason: "SALE"})
	require.NoError(t, err)
	assert.Equal(t, -3, detail.Item.QuantityOnHand)
	assert.Len(t, repo.movements, 1)
}

func TestNegativeStockFlooredWhenDisallowed(t *testing.T) {
	svc, repo, _ := newTestService(t, false)
	ac := actor(authctx.RoleManager, uuid.New())
	item := mustCreateItem(t, svc, ac, 2)

	_, err := svc.Adjust(context.Background(), ac, item.ID.String(), AdjustRequest{QuantityChange: -5})
	assert.Equal(t, apperror.KindConflict, kindOf(t, err))
	assert.Equal(t, 2, repo.items[item.ID].QuantityOnHand, "failed adjustment must not move the balance")
	assert.Empty(t, repo.movements, "failed adjustment must not write a ledger entry")
}

func TestGetItemReturnsBoundedAuditWindow(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	ac := actor(authctx.RoleOwner, uuid.New())
	item := mustCreateItem(t, svc, ac, 100)

	for i := 0; i < 13; i++ {
		_, err := svc.Adjust(context.Background(), ac, item.ID.String(), AdjustRequest{QuantityChange: -1, Note: "daily count"})
		require.NoError(t, err)
	}

	detail, err := svc.GetItem(context.Background(), ac, item.ID.String())
	require.NoError(t, err)
	assert.Len(t, detail.RecentMovements, 10, "audit window is capped at ten movements")
}

func TestLowStockFlag(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	ac := actor(authctx.RoleManager, uuid.New())

	reorder := 3
	item, err := svc.CreateItem(context.Background(), ac, CreateItemRequest{
		SKU: "BATT-01", Name: "battery", Quantity: 5, ReorderPoint: &reorder,
	})
	require.NoError(t, err)

	detail, err := svc.GetItem(context.Background(), ac, item.ID.String())
	require.NoError(t, err)
	assert.False(t, detail.LowStock)

	detail, err = svc.Adjust(context.Background(), ac, item.ID.String(), AdjustRequest{QuantityChange: -2, Reason: "SALE"})
	require.NoError(t, err)
	assert.True(t, detail.LowStock)
}

func TestCrossTenantAdjustLooksLikeNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, true)
	item := mustCreateItem(t, svc, actor(authctx.RoleManager, uuid.New()), 5)

	outsider := actor(authctx.RoleManager, uuid.New())
	_, err := svc.Adjust(context.Background(), outsider, item.ID.String(), AdjustRequest{QuantityChange: -1})
	assert.Equal(t, apperror.KindNotFound, kindOf(t, err))
}

func TestCreateItemValidatesCategory(t *testing.T) {
	svc, _, cats := newTestService(t, true)
	tenant := uuid.New()
	ac := actor(authctx.RoleOwner, tenant)

	c := &category.Category{ID: uuid.New(), StoreID: tenant, Name: "parts"}
	cats.categories[c.ID] = c

	item, err := svc.CreateItem(context.Background(), ac, CreateItemRequest{
		SKU: "CBL-01", Name: "cable", CategoryID: c.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, item.CategoryID)
	assert.Equal(t, c.ID, *item.CategoryID)

	_, err = svc.CreateItem(context.Background(), ac, CreateItemRequest{
		SKU: "CBL-02", Name: "cable", CategoryID: uuid.New().String(),
	})
	assert.Equal(t, apperror.KindValidation, kindOf(t, err))
}
