package timeclock

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for time entries.
type Repository interface {
	Create(ctx context.Context, e *TimeEntry) error
	GetOpenEntry(ctx context.Context, storeID, employeeID uuid.UUID) (*TimeEntry, error)
	Close(ctx context.Context, storeID, id uuid.UUID) (*TimeEntry, error)
	ListByEmployee(ctx context.Context, storeID, employeeID uuid.UUID) ([]*TimeEntry, error)
	List(ctx context.Context, storeID uuid.UUID) ([]*TimeEntry, error)
}
