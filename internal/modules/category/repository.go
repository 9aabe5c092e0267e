package category

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for categories.
type Repository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Category, error)
	List(ctx context.Context, storeID uuid.UUID) ([]*Category, error)
	Update(ctx context.Context, c *Category) error
	Delete(ctx context.Context, storeID, id uuid.UUID) error
}
