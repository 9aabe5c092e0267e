package employee

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for employees. Reads are scoped by
// store id so a record from another tenant is indistinguishable from a
// missing one.
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Employee, error)
	ListActive(ctx context.Context, storeID uuid.UUID) ([]*Employee, error)
	List(ctx context.Context, storeID uuid.UUID) ([]*Employee, error)
	Deactivate(ctx context.Context, storeID, id uuid.UUID) error
}
