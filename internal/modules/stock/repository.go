package stock

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInsufficientStock is returned by Adjust when the negative-stock
// floor is enforced and the delta would take the balance below zero.
var ErrInsufficientStock = errors.New("insufficient stock on hand")

// Repository defines data access for stock items and their ledger.
type Repository interface {
	CreateItem(ctx context.Context, i *StockItem) error
	GetItem(ctx context.Context, storeID, id uuid.UUID) (*StockItem, error)
	ListItems(ctx context.Context, storeID uuid.UUID) ([]*StockItem, error)
	UpdateItem(ctx context.Context, i *StockItem) error
	DeleteItem(ctx context.Context, storeID, id uuid.UUID) error

	// Adjust appends the movement and applies its delta to the item's
	// quantity_on_hand as one atomic unit, locking the item row so
	// concurrent adjustments serialize. Returns the updated item.
	Adjust(ctx context.Context, m *Movement, allowNegative bool) (*StockItem, error)

	ListRecentMovements(ctx context.Context, storeID, itemID uuid.UUID, limit int) ([]*Movement, error)
}
