package sale

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fixpointhq/fixpoint-backend/internal/modules/ticket"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authz"
)

// Service defines sale and refund business logic.
type Service interface {
	Create(ctx context.Context, ac authctx.Context, req CreateSaleRequest) (*Sale, error)
	Get(ctx context.Context, ac authctx.Context, id string) (*SaleDetail, error)
	List(ctx context.Context, ac authctx.Context, status string) ([]*Sale, error)
	Refund(ctx context.Context, ac authctx.Context, saleID string, req RefundRequest) (*Refund, error)
}

type service struct {
	repo    Repository
	tickets ticket.Repository
	logger  *zap.Logger
}

// NewService creates a new sale service.
func NewService(repo Repository, tickets ticket.Repository, logger *zap.Logger) Service {
	return &service{repo: repo, tickets: tickets, logger: logger}
}

func (s *service) Create(ctx context.Context, ac authctx.Context, req CreateSaleRequest) (*Sale, error) {
	if err := authz.Authorize(ac, authz.ActionCreateSale, ac.TenantID); err != nil {
		return nil, err
	}
	if req.Subtotal < 0 || req.Tax < 0 || req.Total < 0 {
		return nil, apperror.Validationf("subtotal, tax and total cannot be negative")
	}

	method := MethodCash
	if req.PaymentMethod != "" {
		switch PaymentMethod(strings.ToUpper(req.PaymentMethod)) {
		case MethodCash:
			method = MethodCash
		case MethodCard:
			method = MethodCard
		case MethodMobileMoney:
			method = MethodMobileMoney
		default:
			return nil, apperror.Validationf("invalid payment_method: %s (allowed: CASH, CARD, MOBILE_MONEY)", req.PaymentMethod)
		}
	}

	now := time.Now().UTC()
	sl := &Sale{
		ID:            uuid.New(),
		StoreID:       ac.TenantID,
		CustomerName:  req.CustomerName,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Total:         req.Total,
		PaymentMethod: method,
		PaymentStatus: StatusPaid,
		PaidAt:        &now,
		CreatedBy:     ac.ActorID,
	}
	if req.TicketID != "" {
		tid, err := uuid.Parse(req.TicketID)
		if err != nil {
			return nil, apperror.Validationf("invalid ticket_id: %s", req.TicketID)
		}
		if _, err := s.tickets.GetByID(ctx, ac.TenantID, tid); err != nil {
			return nil, apperror.Validationf("ticket %s does not exist in this store", req.TicketID)
		}
		sl.TicketID = &tid
	}

	if err := s.repo.Create(ctx, sl); err != nil {
		return nil, apperror.FromDB(err, "sale not found")
	}
	s.logger.Info("sale recorded",
		zap.String("sale_id", sl.ID.String()),
		zap.Float64("total", sl.Total),
		zap.String("method", string(method)))
	return sl, nil
}

func (s *service) Get(ctx context.Context, ac authctx.Context, id string) (*SaleDetail, error) {
	sl, err := s.lookup(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionReadSale, sl.StoreID); err != nil {
		return nil, err
	}
	detail := &SaleDetail{Sale: sl}
	if sl.PaymentStatus == StatusRefunded {
		rf, err := s.repo.GetRefundBySale(ctx, ac.TenantID, sl.ID)
		if err != nil {
			return nil, apperror.FromDB(err, "refund not found")
		}
		detail.Refund = rf
	}
	return detail, nil
}

func (s *service) List(ctx context.Context, ac authctx.Context, status string) ([]*Sale, error) {
	if err := authz.Authorize(ac, authz.ActionReadSale, ac.TenantID); err != nil {
		return nil, err
	}
	if status != "" {
		switch PaymentStatus(strings.ToUpper(status)) {
		case StatusPaid, StatusRefunded:
			status = strings.ToUpper(status)
		default:
			return nil, apperror.Validationf("invalid status filter: %s", status)
		}
	}
	sales, err := s.repo.List(ctx, ac.TenantID, status)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return sales, nil
}

func (s *service) Refund(ctx context.Context, ac authctx.Context, saleID string, req RefundRequest) (*Refund, error) {
	sl, err := s.lookup(ctx, ac, saleID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionCreateRefund, sl.StoreID); err != nil {
		return nil, err
	}
	if sl.PaymentStatus != StatusPaid {
		return nil, apperror.Conflictf("sale is already %s and cannot be refunded", sl.PaymentStatus)
	}
	amount := req.Amount
	if amount == 0 {
		amount = sl.Total
	}
	if amount < 0 {
		return nil, apperror.Validationf("amount cannot be negative")
	}
	if amount > sl.Total {
		return nil, apperror.Validationf("refund amount %.2f exceeds sale total %.2f", amount, sl.Total)
	}

	rf := &Refund{
		ID:        uuid.New(),
		SaleID:    sl.ID,
		StoreID:   sl.StoreID,
		Amount:    amount,
		Reason:    req.Reason,
		CreatedBy: ac.ActorID,
	}
	if err := s.repo.RefundSale(ctx, rf); err != nil {
		if errors.Is(err, ErrAlreadyRefunded) {
			return nil, apperror.Conflictf("sale is already REFUNDED and cannot be refunded")
		}
		return nil, apperror.Internal(err)
	}
	s.logger.Info("sale refunded",
		zap.String("sale_id", sl.ID.String()),
		zap.Float64("amount", amount))
	return rf, nil
}

// lookup fetches a sale scoped to the actor's store.
func (s *service) lookup(ctx context.Context, ac authctx.Context, id string) (*Sale, error) {
	sid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validationf("invalid sale id: %s", id)
	}
	sl, err := s.repo.GetByID(ctx, ac.TenantID, sid)
	if err != nil {
		return nil, apperror.FromDB(err, "sale not found")
	}
	return sl, nil
}
