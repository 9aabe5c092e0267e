package ticket

import (
	"context"

	"github.com/google/uuid"
)

// ListFilter narrows a ticket listing. Zero values mean no filtering.
type ListFilter struct {
	Status       string
	TechnicianID *uuid.UUID
}

// Repository defines data access for tickets and their notes. All reads
// are scoped by store id.
type Repository interface {
	Create(ctx context.Context, t *Ticket) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Ticket, error)
	List(ctx context.Context, storeID uuid.UUID, f ListFilter) ([]*Ticket, error)
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error

	CreateNote(ctx context.Context, n *Note) error
	ListNotes(ctx context.Context, storeID, ticketID uuid.UUID) ([]*Note, error)
}
