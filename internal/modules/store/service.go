package store

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authz"
)

// Service defines store business logic. The actor can only ever see or
// touch their own store; any other store id is invisible to them.
type Service interface {
	Get(ctx context.Context, ac authctx.Context) (*Store, error)
	Update(ctx context.Context, ac authctx.Context, req UpdateStoreRequest) (*Store, error)
	Delete(ctx context.Context, ac authctx.Context) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new store service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Get(ctx context.Context, ac authctx.Context) (*Store, error) {
	st, err := s.repo.GetByID(ctx, ac.TenantID)
	if err != nil {
		return nil, apperror.FromDB(err, "store not found")
	}
	return st, nil
}

func (s *service) Update(ctx context.Context, ac authctx.Context, req UpdateStoreRequest) (*Store, error) {
	if err := authz.Authorize(ac, authz.ActionManageStore, ac.TenantID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Validationf("name is required")
	}
	st, err := s.repo.GetByID(ctx, ac.TenantID)
	if err != nil {
		return nil, apperror.FromDB(err, "store not found")
	}
	st.Name = req.Name
	st.Address = req.Address
	st.Phone = req.Phone
	if err := s.repo.Update(ctx, st); err != nil {
		return nil, apperror.FromDB(err, "store not found")
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, ac authctx.Context) error {
	if err := authz.Authorize(ac, authz.ActionManageStore, ac.TenantID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ac.TenantID); err != nil {
		return apperror.FromDB(err, "store not found")
	}
	s.logger.Info("store deleted", zap.String("store_id", ac.TenantID.String()))
	return nil
}
