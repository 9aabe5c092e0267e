package sale

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethod represents how a sale was paid.
type PaymentMethod string

const (
	MethodCash        PaymentMethod = "CASH"
	MethodCard        PaymentMethod = "CARD"
	MethodMobileMoney PaymentMethod = "MOBILE_MONEY"
)

// PaymentStatus is the settlement state of a sale. A sale is PAID at
// creation and can flip to REFUNDED exactly once.
type PaymentStatus string

const (
	StatusPaid     PaymentStatus = "PAID"
	StatusRefunded PaymentStatus = "REFUNDED"
)

// Sale records a completed counter transaction, optionally tied to a
// repair ticket.
type Sale struct {
	ID            uuid.UUID     `json:"id"`
	StoreID       uuid.UUID     `json:"store_id"`
	TicketID      *uuid.UUID    `json:"ticket_id,omitempty"`
	CustomerName  string        `json:"customer_name,omitempty"`
	Subtotal      float64       `json:"subtotal"`
	Tax           float64       `json:"tax"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedBy     uuid.UUID     `json:"created_by"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Refund is the at-most-one reversal of a sale.
type Refund struct {
	ID        uuid.UUID `json:"id"`
	SaleID    uuid.UUID `json:"sale_id"`
	StoreID   uuid.UUID `json:"store_id"`
	Amount    float64   `json:"amount"`
	Reason    string    `json:"reason,omitempty"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// SaleDetail is the read-side view of a sale: the sale itself plus its
// refund, when one exists.
type SaleDetail struct {
	Sale   *Sale   `json:"sale"`
	Refund *Refund `json:"refund,omitempty"`
}

// CreateSaleRequest is the payload for recording a sale.
type CreateSaleRequest struct {
	TicketID      string  `json:"ticket_id,omitempty"`
	CustomerName  string  `json:"customer_name,omitempty"`
	Subtotal      float64 `json:"subtotal"`
	Tax           float64 `json:"tax"`
	Total         float64 `json:"total"`
	PaymentMethod string  `json:"payment_method,omitempty"`
}

// RefundRequest is the payload for refunding a sale. Amount defaults to
// the sale total.
type RefundRequest struct {
	Amount float64 `json:"amount,omitempty"`
	Reason string  `json:"reason,omitempty"`
}
