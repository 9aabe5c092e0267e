package category

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authz"
)

// Service defines category business logic.
type Service interface {
	Create(ctx context.Context, ac authctx.Context, req UpsertCategoryRequest) (*Category, error)
	Get(ctx context.Context, ac authctx.Context, id string) (*Category, error)
	List(ctx context.Context, ac authctx.Context) ([]*Category, error)
	Update(ctx context.Context, ac authctx.Context, id string, req UpsertCategoryRequest) (*Category, error)
	Delete(ctx context.Context, ac authctx.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new category service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) Create(ctx context.Context, ac authctx.Context, req UpsertCategoryRequest) (*Category, error) {
	if err := authz.Authorize(ac, authz.ActionManageCategory, ac.TenantID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Validationf("name is required")
	}
	c := &Category{
		ID:          uuid.New(),
		StoreID:     ac.TenantID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, apperror.FromDB(err, "category not found")
	}
	return c, nil
}

func (s *service) Get(ctx context.Context, ac authctx.Context, id string) (*Category, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validationf("invalid category id: %s", id)
	}
	c, err := s.repo.GetByID(ctx, ac.TenantID, cid)
	if err != nil {
		return nil, apperror.FromDB(err, "category not found")
	}
	if err := authz.Authorize(ac, authz.ActionReadCategory, c.StoreID); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, ac authctx.Context) ([]*Category, error) {
	if err := authz.Authorize(ac, authz.ActionReadCategory, ac.TenantID); err != nil {
		return nil, err
	}
	categories, err := s.repo.List(ctx, ac.TenantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return categories, nil
}

func (s *service) Update(ctx context.Context, ac authctx.Context, id string, req UpsertCategoryRequest) (*Category, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validationf("invalid category id: %s", id)
	}
	c, err := s.repo.GetByID(ctx, ac.TenantID, cid)
	if err != nil {
		return nil, apperror.FromDB(err, "category not found")
	}
	if err := authz.Authorize(ac, authz.ActionManageCategory, c.StoreID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Validationf("name is required")
	}
	c.Name = req.Name
	c.Description = req.Description
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apperror.FromDB(err, "category not found")
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, ac authctx.Context, id string) error {
	cid, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validationf("invalid category id: %s", id)
	}
	c, err := s.repo.GetByID(ctx, ac.TenantID, cid)
	if err != nil {
		return apperror.FromDB(err, "category not found")
	}
	if err := authz.Authorize(ac, authz.ActionManageCategory, c.StoreID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ac.TenantID, cid); err != nil {
		return apperror.FromDB(err, "category not found")
	}
	return nil
}
