package stock

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Reason classifies why a stock movement happened.
type Reason string

const (
	ReasonSale        Reason = "SALE"
	ReasonPurchase    Reason = "PURCHASE"
	ReasonAdjustment  Reason = "ADJUSTMENT"
	ReasonReturn      Reason = "RETURN"
	ReasonTransfer    Reason = "TRANSFER"
	ReasonReservation Reason = "RESERVATION"
	ReasonRelease     Reason = "RELEASE"
)

// ParseReason normalises a reason string, reporting whether it is known.
func ParseReason(s string) (Reason, bool) {
	r := Reason(strings.ToUpper(s))
	switch r {
	case ReasonSale, ReasonPurchase, ReasonAdjustment, ReasonReturn,
		ReasonTransfer, ReasonReservation, ReasonRelease:
		return r, true
	}
	return "", false
}

// StockItem is an inventory record. quantity_on_hand is a materialized
// projection of the movement ledger: every change to it goes through an
// appended movement, in the same transaction.
type StockItem struct {
	ID             uuid.UUID  `json:"id"`
	StoreID        uuid.UUID  `json:"store_id"`
	SKU            string     `json:"sku"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	CategoryID     *uuid.UUID `json:"category_id,omitempty"`
	QuantityOnHand int        `json:"quantity_on_hand"`
	ReorderPoint   *int       `json:"reorder_point,omitempty"`
	UnitPrice      float64    `json:"unit_price"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// LowStock reports whether the item has fallen to its reorder point.
// Purely advisory; nothing acts on it automatically.
func (i *StockItem) LowStock() bool {
	return i.ReorderPoint != nil && i.QuantityOnHand <= *i.ReorderPoint
}

// Movement is one immutable ledger entry justifying a quantity change.
type Movement struct {
	ID             uuid.UUID `json:"id"`
	ItemID         uuid.UUID `json:"item_id"`
	StoreID        uuid.UUID `json:"store_id"`
	QuantityChange int       `json:"quantity_change"`
	Reason         Reason    `json:"reason"`
	Note           string    `json:"note,omitempty"`
	RecordedBy     uuid.UUID `json:"recorded_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// ItemDetail is the read-side view of an item: the item itself, a bounded
// window of its newest movements, and the advisory low-stock flag.
type ItemDetail struct {
	Item            *StockItem  `json:"item"`
	RecentMovements []*Movement `json:"recent_movements"`
	LowStock        bool        `json:"low_stock"`
}

// CreateItemRequest is the payload for adding a stock item.
type CreateItemRequest struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	CategoryID   string  `json:"category_id,omitempty"`
	Quantity     int     `json:"quantity,omitempty"`
	ReorderPoint *int    `json:"reorder_point,omitempty"`
	UnitPrice    float64 `json:"unit_price,omitempty"`
}

// UpdateItemRequest is the payload for editing item details. Nil fields
// are left unchanged; quantity is only ever changed through Adjust.
type UpdateItemRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	CategoryID   *string  `json:"category_id,omitempty"`
	ReorderPoint *int     `json:"reorder_point,omitempty"`
	UnitPrice    *float64 `json:"unit_price,omitempty"`
}

// AdjustRequest is the payload for moving stock.
type AdjustRequest struct {
	QuantityChange int    `json:"quantity_change"`
	Reason         string `json:"reason,omitempty"`
	Note           string `json:"note,omitempty"`
}
