package ticket

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fixpointhq/fixpoint-backend/internal/modules/employee"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/apperror"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
	"github.com/fixpointhq/fixpoint-backend/internal/platform/authz"
)

// Service defines ticket business logic.
type Service interface {
	Create(ctx context.Context, ac authctx.Context, req CreateTicketRequest) (*Ticket, error)
	Get(ctx context.Context, ac authctx.Context, id string) (*Ticket, error)
	List(ctx context.Context, ac authctx.Context, status, technicianID string) ([]*Ticket, error)
	Update(ctx context.Context, ac authctx.Context, id string, req UpdateTicketRequest) (*Ticket, error)
	Transition(ctx context.Context, ac authctx.Context, id string, req TransitionRequest) (*Ticket, error)
	AssignTechnician(ctx context.Context, ac authctx.Context, id string, req AssignRequest) (*Ticket, error)
	Delete(ctx context.Context, ac authctx.Context, id string) error

	AddNote(ctx context.Context, ac authctx.Context, ticketID string, req AddNoteRequest) (*Note, error)
	ListNotes(ctx context.Context, ac authctx.Context, ticketID string) ([]*Note, error)
}

type service struct {
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

// NewService creates a new ticket service.
func NewService(repo Repository, employees employee.Repository, logger *zap.Logger) Service {
	return &service{repo: repo, employees: employees, logger: logger}
}

// validTransitions is the lifecycle edge table. A status missing from a
// list is unreachable from that state; terminal states have no edges.
var validTransitions = map[Status][]Status{
	StatusReceived:      {StatusInProgress, StatusCancelled},
	StatusInProgress:    {StatusAwaitingParts, StatusReady, StatusCancelled},
	StatusAwaitingParts: {StatusInProgress, StatusReady, StatusCancelled},
	StatusReady:         {StatusCompleted, StatusCancelled},
	StatusCompleted:     {},
	StatusCancelled:     {},
}

func (s *service) Create(ctx context.Context, ac authctx.Context, req CreateTicketRequest) (*Ticket, error) {
	if err := authz.Authorize(ac, authz.ActionCreateTicket, ac.TenantID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperror.Validationf("title is required")
	}
	if req.EstimatedCost < 0 {
		return nil, apperror.Validationf("estimated_cost cannot be negative")
	}
	t := &Ticket{
		ID:            uuid.New(),
		StoreID:       ac.TenantID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        StatusReceived,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		EstimatedCost: req.EstimatedCost,
		ScheduledAt:   req.ScheduledAt,
		CreatedBy:     ac.ActorID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, apperror.FromDB(err, "ticket not found")
	}
	s.logger.Info("ticket created",
		zap.String("ticket_id", t.ID.String()),
		zap.String("store_id", t.StoreID.String()))
	return t, nil
}

func (s *service) Get(ctx context.Context, ac authctx.Context, id string) (*Ticket, error) {
	t, err := s.lookup(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionReadTicket, t.StoreID); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) List(ctx context.Context, ac authctx.Context, status, technicianID string) ([]*Ticket, error) {
	if err := authz.Authorize(ac, authz.ActionReadTicket, ac.TenantID); err != nil {
		return nil, err
	}
	var f ListFilter
	if status != "" {
		st, ok := ParseStatus(status)
		if !ok {
			return nil, apperror.Validationf("invalid status filter: %s", status)
		}
		f.Status = string(st)
	}
	if technicianID != "" {
		techID, err := uuid.Parse(technicianID)
		if err != nil {
			return nil, apperror.Validationf("invalid technician_id filter: %s", technicianID)
		}
		f.TechnicianID = &techID
	}
	tickets, err := s.repo.List(ctx, ac.TenantID, f)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return tickets, nil
}

func (s *service) Update(ctx context.Context, ac authctx.Context, id string, req UpdateTicketRequest) (*Ticket, error) {
	t, err := s.lookup(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionUpdateTicket, t.StoreID); err != nil {
		return nil, err
	}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, apperror.Validationf("title cannot be empty")
		}
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.CustomerName != nil {
		t.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		t.CustomerPhone = *req.CustomerPhone
	}
	for name, f := range map[string]*float64{
		"estimated_cost": req.EstimatedCost,
		"subtotal":       req.Subtotal,
		"tax":            req.Tax,
		"total":          req.Total,
	} {
		if f != nil && *f < 0 {
			return nil, apperror.Validationf("%s cannot be negative", name)
		}
	}
	if req.EstimatedCost != nil {
		t.EstimatedCost = *req.EstimatedCost
	}
	if req.Subtotal != nil {
		t.Subtotal = *req.Subtotal
	}
	if req.Tax != nil {
		t.Tax = *req.Tax
	}
	if req.Total != nil {
		t.Total = *req.Total
	}
	if req.ScheduledAt != nil {
		t.ScheduledAt = req.ScheduledAt
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, apperror.FromDB(err, "ticket not found")
	}
	return t, nil
}

func (s *service) Transition(ctx context.Context, ac authctx.Context, id string, req TransitionRequest) (*Ticket, error) {
	t, err := s.lookup(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionUpdateTicket, t.StoreID); err != nil {
		return nil, err
	}
	newStatus, ok := ParseStatus(req.Status)
	if !ok {
		return nil, apperror.Validationf("invalid status: %s", req.Status)
	}

	// Same status is an idempotent no-op: no write, no timestamps.
	if newStatus == t.Status {
		return t, nil
	}

	allowed := false
	for _, next := range validTransitions[t.Status] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperror.Conflictf("cannot transition ticket from %s to %s", t.Status, newStatus)
	}

	now := time.Now().UTC()
	switch newStatus {
	case StatusInProgress:
		// Set-once: re-entry after AWAITING_PARTS keeps the original start.
		if t.StartedAt == nil {
			t.StartedAt = &now
		}
	case StatusCompleted:
		if t.CompletedAt == nil {
			t.CompletedAt = &now
		}
	case StatusCancelled:
		if t.CancelledAt == nil {
			t.CancelledAt = &now
		}
	}
	t.Status = newStatus
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, apperror.FromDB(err, "ticket not found")
	}
	s.logger.Info("ticket status changed",
		zap.String("ticket_id", t.ID.String()),
		zap.String("status", string(newStatus)))
	return t, nil
}

func (s *service) AssignTechnician(ctx context.Context, ac authctx.Context, id string, req AssignRequest) (*Ticket, error) {
	t, err := s.lookup(ctx, ac, id)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionAssignTechnician, t.StoreID); err != nil {
		return nil, err
	}
	if req.TechnicianID == "" {
		t.TechnicianID = nil
	} else {
		techID, err := uuid.Parse(req.TechnicianID)
		if err != nil {
			return nil, apperror.Validationf("invalid technician_id: %s", req.TechnicianID)
		}
		tech, err := s.employees.GetByID(ctx, ac.TenantID, techID)
		if err != nil {
			return nil, apperror.Validationf("technician %s does not exist in this store", req.TechnicianID)
		}
		if !tech.IsActive {
			return nil, apperror.Validationf("technician %s is no longer active", req.TechnicianID)
		}
		t.TechnicianID = &tech.ID
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, apperror.FromDB(err, "ticket not found")
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, ac authctx.Context, id string) error {
	t, err := s.lookup(ctx, ac, id)
	if err != nil {
		return err
	}
	if err := authz.Authorize(ac, authz.ActionDeleteTicket, t.StoreID); err != nil {
		return err
	}
	if t.Status == StatusCompleted {
		return apperror.Conflictf("completed tickets cannot be deleted")
	}
	if err := s.repo.Delete(ctx, ac.TenantID, t.ID); err != nil {
		return apperror.FromDB(err, "ticket not found")
	}
	s.logger.Info("ticket deleted", zap.String("ticket_id", t.ID.String()))
	return nil
}

func (s *service) AddNote(ctx context.Context, ac authctx.Context, ticketID string, req AddNoteRequest) (*Note, error) {
	t, err := s.lookup(ctx, ac, ticketID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionAddTicketNote, t.StoreID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, apperror.Validationf("body is required")
	}
	visibility := VisibilityInternal
	if req.Visibility != "" {
		switch Visibility(strings.ToUpper(req.Visibility)) {
		case VisibilityInternal:
			visibility = VisibilityInternal
		case VisibilityCustomer:
			visibility = VisibilityCustomer
		default:
			return nil, apperror.Validationf("invalid visibility: %s (allowed: INTERNAL, CUSTOMER)", req.Visibility)
		}
	}
	n := &Note{
		ID:         uuid.New(),
		TicketID:   t.ID,
		StoreID:    t.StoreID,
		AuthorID:   ac.ActorID,
		Body:       req.Body,
		Visibility: visibility,
	}
	if err := s.repo.CreateNote(ctx, n); err != nil {
		return nil, apperror.FromDB(err, "ticket not found")
	}
	return n, nil
}

func (s *service) ListNotes(ctx context.Context, ac authctx.Context, ticketID string) ([]*Note, error) {
	t, err := s.lookup(ctx, ac, ticketID)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(ac, authz.ActionReadTicket, t.StoreID); err != nil {
		return nil, err
	}
	notes, err := s.repo.ListNotes(ctx, ac.TenantID, t.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return notes, nil
}

// lookup fetches a ticket scoped to the actor's store, so a ticket in any
// other store reports not found.
func (s *service) lookup(ctx context.Context, ac authctx.Context, id string) (*Ticket, error) {
	tid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.Validationf("invalid ticket id: %s", id)
	}
	t, err := s.repo.GetByID(ctx, ac.TenantID, tid)
	if err != nil {
		return nil, apperror.FromDB(err, "ticket not found")
	}
	return t, nil
}
