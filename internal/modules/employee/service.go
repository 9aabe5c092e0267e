package employee

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authz"
)

// Service defines employee business logic.
type Service interface {
	Create(ctx context.Context, ac authctx.Context, req CreateEmployeeRequest) (*Employee, error)
	Get(ctx context.Context, ac authctx.Context, id string) (*Employee, error)
	List(ctx context.Context, ac authctx.Context) ([]*Employee, error)
	Delete(ctx context.Context, ac authctx.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new employee service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Create(ctx context.Context, ac authctx.Context, req CreateEmployeeRequest) (*Employee, error) {
	if err := authz.Authorize(ac, authz.ActionManageEmployee, ac.TenantID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperror.Validationf("name is required")
	}
	role, ok := authctx.ParseRole(req.Role)
	if !ok {
		return nil, apperror.Validationf("invalid role: %s (allowed: MANAGER, TECHNICIAN, CASHIER, VIEWER)", req.Role)
	}
	if role == authctx.RoleOwner {
		return nil, apperror.Validationf("the OWNER role is assigned at store registration and cannot be granted")
	}
	if len(req.PIN) < 4 {
		return nil, apperror.Validationf("pin must be at least 4 digits")
	}

	// A PIN identifies exactly one active employee within a store, so a
	// collision with any existing hash blocks creation.
	active, err := s.repo.ListActive(ctx, ac.TenantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	for _, e := range active {
		if bcrypt.CompareHashAndPassword([]byte(e.PINHash), []byte(req.PIN)) == nil {
			return nil, apperror.Conflictf("pin is already in use by another employee")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	e := &Employee{
		ID:       uuid.New(),
		StoreID:  ac.TenantID,
		Name:     req.Name,
		Role:     role,
		PINHash:  string(hash),
		IsActive: true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, apperror.FromDB(err, "employee not found")
	}
	s.logger.Info("employee created",
		zap.String("employee_id", e.ID.String()),
		zap.String("store_id", e.StoreID.String()),
		zap.String("role", string(e.Role)))
	return e, nil
}

func (s *service) Get(ctx context.Context, ac authctx.Context, id string) (*Employee, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validationf("invalid employee id: %s", id)
	}
	e, err := s.repo.GetByID(ctx, ac.TenantID, eid)
	if err != nil {
		return nil, apperror.FromDB(err, "employee not found")
	}
	if err := authz.Authorize(ac, authz.ActionReadEmployee, e.StoreID); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) List(ctx context.Context, ac authctx.Context) ([]*Employee, error) {
	if err := authz.Authorize(ac, authz.ActionReadEmployee, ac.TenantID); err != nil {
		return nil, err
	}
	employees, err := s.repo.List(ctx, ac.TenantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return employees, nil
}

func (s *service) Delete(ctx context.Context, ac authctx.Context, id string) error {
	eid, err := uuid.Parse(id)
	if err != nil {
		return apperror.Validationf("invalid employee id: %s", id)
	}
	e, err := s.repo.GetByID(ctx, ac.TenantID, eid)
	if err != nil {
		return apperror.FromDB(err, "employee not found")
	}
	if err := authz.Authorize(ac, authz.ActionManageEmployee, e.StoreID); err != nil {
		return err
	}
	if e.Role == authctx.RoleOwner {
		return apperror.Conflictf("the store owner cannot be deleted")
	}
	if err := s.repo.Deactivate(ctx, ac.TenantID, eid); err != nil {
		return apperror.Internal(err)
	}
	s.logger.Info("employee deactivated",
		zap.String("employee_id", eid.String()),
		zap.String("store_id", ac.TenantID.String()))
	return nil
}
