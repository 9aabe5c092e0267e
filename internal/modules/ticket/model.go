package ticket

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a repair ticket.
type Status string

const (
	StatusReceived      Status = "RECEIVED"
	StatusInProgress    Status = "IN_PROGRESS"
	StatusAwaitingParts Status = "AWAITING_PARTS"
	StatusReady         Status = "READY"
	StatusCompleted     Status = "COMPLETED"
	StatusCancelled     Status = "CANCELLED"
)

// ParseStatus normalises a status string, reporting whether it is known.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToUpper(s))
	switch st {
	case StatusReceived, StatusInProgress, StatusAwaitingParts,
		StatusReady, StatusCompleted, StatusCancelled:
		return st, true
	}
	return "", false
}

// Visibility scopes who a ticket note is meant for. CUSTOMER notes are a
// hint to presentation layers; the core stores both identically.
type Visibility string

const (
	VisibilityInternal Visibility = "INTERNAL"
	VisibilityCustomer Visibility = "CUSTOMER"
)

// Ticket is a repair work order. The started/completed/cancelled
// timestamps are set the first time the matching status is entered and
// never change afterwards.
type Ticket struct {
	ID            uuid.UUID  `json:"id"`
	StoreID       uuid.UUID  `json:"store_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        Status     `json:"status"`
	TechnicianID  *uuid.UUID `json:"technician_id,omitempty"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	EstimatedCost float64    `json:"estimated_cost"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Note is an immutable annotation on a ticket, shown newest first.
type Note struct {
	ID         uuid.UUID  `json:"id"`
	TicketID   uuid.UUID  `json:"ticket_id"`
	StoreID    uuid.UUID  `json:"store_id"`
	AuthorID   uuid.UUID  `json:"author_id"`
	Body       string     `json:"body"`
	Visibility Visibility `json:"visibility"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateTicketRequest is the payload for opening a ticket.
type CreateTicketRequest struct {
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	CustomerName  string     `json:"customer_name,omitempty"`
	CustomerPhone string     `json:"customer_phone,omitempty"`
	EstimatedCost float64    `json:"estimated_cost,omitempty"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
}

// UpdateTicketRequest is the payload for editing non-status fields.
// Nil fields are left unchanged.
type UpdateTicketRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	CustomerName  *string    `json:"customer_name,omitempty"`
	CustomerPhone *string    `json:"customer_phone,omitempty"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
	Subtotal      *float64   `json:"subtotal,omitempty"`
	Tax           *float64   `json:"tax,omitempty"`
	Total         *float64   `json:"total,omitempty"`
	ScheduledAt   *time.Time `json:"scheduled_at,omitempty"`
}

// TransitionRequest is the payload for advancing a ticket's status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// AssignRequest is the payload for assigning a technician. An empty id
// clears the assignment.
type AssignRequest struct {
	TechnicianID string `json:"technician_id"`
}

// AddNoteRequest is the payload for attaching a note.
type AddNoteRequest struct {
	Body       string `json:"body"`
	Visibility string `json:"visibility,omitempty"`
}
