package store

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for stores.
type Repository interface {
	Create(ctx context.Context, s *Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*Store, error)
	GetByCode(ctx context.Context, code string) (*Store, error)
	Update(ctx context.Context, s *Store) error
	Delete(ctx context.Context, id uuid.UUID) error
}
