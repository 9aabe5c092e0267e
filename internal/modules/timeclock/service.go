package timeclock

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authz"
)

// Service defines time-clock business logic. Punching is always
// self-service; reading other employees' entries is manager territory.
type Service interface {
	ClockIn(ctx context.Context, ac authctx.Context) (*TimeEntry, error)
	ClockOut(ctx context.Context, ac authctx.Context) (*TimeEntry, error)
	ListMine(ctx context.Context, ac authctx.Context) ([]*TimeEntry, error)
	ListAll(ctx context.Context, ac authctx.Context, employeeID string) ([]*TimeEntry, error)
}

type service struct{ repo Repository }

// NewService creates a new time-clock service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ClockIn(ctx context.Context, ac authctx.Context) (*TimeEntry, error) {
	if err := authz.Authorize(ac, authz.ActionPunchClock, ac.TenantID); err != nil {
		return nil, err
	}
	open, err := s.repo.GetOpenEntry(ctx, ac.TenantID, ac.ActorID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.Internal(err)
	}
	if open != nil {
		return nil, apperror.Conflictf("already clocked in since %s", open.ClockedInAt.Format(time.RFC3339))
	}
	e := &TimeEntry{
		ID:          uuid.New(),
		StoreID:     ac.TenantID,
		EmployeeID:  ac.ActorID,
		ClockedInAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, apperror.Internal(err)
	}
	return e, nil
}

func (s *service) ClockOut(ctx context.Context, ac authctx.Context) (*TimeEntry, error) {
	if err := authz.Authorize(ac, authz.ActionPunchClock, ac.TenantID); err != nil {
		return nil, err
	}
	open, err := s.repo.GetOpenEntry(ctx, ac.TenantID, ac.ActorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Conflictf("no open time entry to close")
		}
		return nil, apperror.Internal(err)
	}
	closed, err := s.repo.Close(ctx, ac.TenantID, open.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return closed, nil
}

func (s *service) ListMine(ctx context.Context, ac authctx.Context) ([]*TimeEntry, error) {
	if err := authz.Authorize(ac, authz.ActionPunchClock, ac.TenantID); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListByEmployee(ctx, ac.TenantID, ac.ActorID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}

func (s *service) ListAll(ctx context.Context, ac authctx.Context, employeeID string) ([]*TimeEntry, error) {
	if err := authz.Authorize(ac, authz.ActionViewTimeClock, ac.TenantID); err != nil {
		return nil, err
	}
	if employeeID != "" {
		eid, err := uuid.Parse(employeeID)
		if err != nil {
			return nil, apperror.Validationf("invalid employee_id: %s", employeeID)
		}
		entries, err := s.repo.ListByEmployee(ctx, ac.TenantID, eid)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return entries, nil
	}
	entries, err := s.repo.List(ctx, ac.TenantID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return entries, nil
}
