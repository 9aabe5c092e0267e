package stock

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fixpointhq/fixpoint-backend/internal/modules/category"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authz"
)

// recentMovementWindow bounds the audit window returned with an item.
const recentMovementWindow = 10

// Service defines inventory business logic.
type Service interface {
	CreateItem(ctx context.Context, ac authctx.Context, req CreateItemRequest) (*StockItem, error)
	GetItem(ctx context.Context, ac authctx.Context, id string) (*ItemDetail, error)
	ListItems(ctx context.Context, ac authctx.Context) ([]*StockItem, error)
	UpdateItem(ctx context.Context, ac authctx.Context, id string, req UpdateItemRequest) (*StockItem, error)
	DeleteItem(ctx context.Context, ac authctx.Context, id string) error
	Adjust(ctx context.Context, ac authctx.Context, id string, req AdjustRequest) (*ItemDetail, error)
}

type service struct {
	repo          Repository
	categories    category.Repository
	allowNegative bool
	logger        *zap.Logger
}

// NewService creates a new stock service. allowNegative controls whether
// an adjustment may take quantity-on-hand below zero.
func NewService(repo Repository, categories category.Repository, allowNegative bool, logger *zap.Logger) Service {
	return &service{
		repo:          repo,
		categories:    categories,
		allowNegative: allowNegative,
		logger:        logger,
	}
}

func (s *service) CreateItem(ctx context.Context, ac authctx.Context, req CreateItemRequest) (*StockItem, error) {
	if err := authz.Authorize(ac, authz.ActionManageStock, ac.TenantID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.SKU) == "" {
		return nil, apperror.Validationf("sku is required")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Validationf("name is required")
	}
	if req.Quantity < 0 {
		return nil, apperror.Validationf("quantity cannot be negative")
	}
	if req.UnitPrice < 0 {
		return nil, apperror.Validationf("unit_price cannot be negative")
	}
	item := &StockItem{
		ID:             uuid.New(),
		StoreID:        ac.TenantID,
		SKU:            req.SKU,
		Name:           req.Name,
		Description:    req.Description,
		QuantityOnHand: req.Quantity,
		ReorderPoint:   req.ReorderPoint,
		UnitPrice:      req.UnitPrice,
	}
	if req.CategoryID != "" {
		cid, err := s.resolveCategory(ctx, ac, req.CategoryID)
		if err != nil {
			return nil, err
		}
		item.CategoryID = cid
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, apperror.FromDB(err, "stock item not found")
	}
	s.logger.Info("stock item created",
		zap.String("item_id", item.ID.String()),
		zap.String("sku", item.SKU))
	return item, nil
}

func (s *service) GetItem(ctx context.Context, ac authctx.Context, id string) (*ItemDetail, error) {
	item, err := s.lookup(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionReadStock, item.StoreID); err != nil {
		return nil, err
	}
	movements, err := s.repo.ListRecentMovements(ctx, ac.TenantID, item.ID, recentMovementWindow)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &ItemDetail{Item: item, RecentMovements: movements, LowStock: item.LowStock()}, nil
}

func (s *service) ListItems(ctx context.Context, ac authctx.Context) ([]*StockItem, error) {
	if err := authz.Authorize(ac, authz.ActionReadStock, ac.TenantID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListItems(ctx, ac.TenantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func (s *service) UpdateItem(ctx context.Context, ac authctx.Context, id string, req UpdateItemRequest) (*StockItem, error) {
	item, err := s.lookup(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionManageStock, item.StoreID); err != nil {
		return nil, err
	}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, apperror.Validationf("name cannot be empty")
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID == "" {
			item.CategoryID = nil
		} else {
			cid, err := s.resolveCategory(ctx, ac, *req.CategoryID)
			if err != nil {
				return nil, err
			}
			item.CategoryID = cid
		}
	}
	if req.ReorderPoint != nil {
		item.ReorderPoint = req.ReorderPoint
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice < 0 {
			return nil, apperror.Validationf("unit_price cannot be negative")
		}
		item.UnitPrice = *req.UnitPrice
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, apperror.FromDB(err, "stock item not found")
	}
	return item, nil
}

func (s *service) DeleteItem(ctx context.Context, ac authctx.Context, id string) error {
	item, err := s.lookup(ctx, ac, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(ac, authz.ActionManageStock, item.StoreID); err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, ac.TenantID, item.ID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (s *service) Adjust(ctx context.Context, ac authctx.Context, id string, req AdjustRequest) (*ItemDetail, error) {
	item, err := s.lookup(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionAdjustStock, item.StoreID); err != nil {
		return nil, err
	}
	if req.QuantityChange == 0 {
		return nil, apperror.Validationf("quantity_change cannot be zero")
	}
	reason := ReasonAdjustment
	if req.Reason != "" {
		r, ok := ParseReason(req.Reason)
		if !ok {
			return nil, apperror.Validationf("invalid reason: %s", req.Reason)
		}
		reason = r
	}
	m := &Movement{
		ID:             uuid.New(),
		ItemID:         item.ID,
		StoreID:        ac.TenantID,
		QuantityChange: req.QuantityChange,
		Reason:         reason,
		Note:           req.Note,
		RecordedBy:     ac.ActorID,
	}
	updated, err := s.repo.Adjust(ctx, m, s.allowNegative)
	if err != nil {
		if errors.Is(err, ErrInsufficientStock) {
			return nil, apperror.Conflictf("adjustment of %+d would take %s below zero", req.QuantityChange, item.SKU)
		}
		return nil, apperror.FromDB(err, "stock item not found")
	}
	s.logger.Info("stock adjusted",
		zap.String("item_id", item.ID.String()),
		zap.Int("quantity_change", req.QuantityChange),
		zap.String("reason", string(reason)),
		zap.Int("quantity_on_hand", updated.QuantityOnHand))

	movements, err := s.repo.ListRecentMovements(ctx, ac.TenantID, item.ID, recentMovementWindow)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &ItemDetail{Item: updated, RecentMovements: movements, LowStock: updated.LowStock()}, nil
}

func (s *service) resolveCategory(ctx context.Context, ac authctx.Context, id string) (*uuid.UUID, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validationf("invalid category_id: %s", id)
	}
	if _, err := s.categories.GetByID(ctx, ac.TenantID, cid); err != nil {
		return nil, apperror.Validationf("category %s does not exist in this store", id)
	}
	return &cid, nil
}

// lookup fetches an item scoped to the actor's store.
func (s *service) lookup(ctx context.Context, ac authctx.Context, id string) (*StockItem, error) {
	iid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validationf("invalid stock item id: %s", id)
	}
	item, err := s.repo.GetItem(ctx, ac.TenantID, iid)
	if err != nil {
		return nil, apperror.FromDB(err, "stock item not found")
	}
	return item, nil
}
