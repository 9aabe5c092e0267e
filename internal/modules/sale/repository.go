package sale

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrAlreadyRefunded is returned by RefundSale when the sale is no
// longer PAID.
var ErrAlreadyRefunded = errors.New("sale already refunded")

// Repository defines data access for sales and refunds.
type Repository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, storeID, id uuid.UUID) (*Sale, error)
	List(ctx context.Context, storeID uuid.UUID, status string) ([]*Sale, error)

	// RefundSale inserts the refund and flips the sale from PAID to
	// REFUNDED in one transaction; if the sale is not PAID anymore it
	// returns ErrAlreadyRefunded and writes nothing.
	RefundSale(ctx context.Context, r *Refund) error

	GetRefundBySale(ctx context.Context, storeID, saleID uuid.UUID) (*Refund, error)
}
