package employee

import (
	"time"

	"github.com/google/uuid"

	"github.com/fixpointhq/fixpoint-backend/internal/platform/authctx"
)

// Employee is an actor within a store. Deactivated employees keep their
// rows so ticket notes and stock movements retain their authorship.
type Employee struct {
	ID        uuid.UUID    `json:"id"`
	StoreID   uuid.UUID    `json:"store_id"`
	Name      string       `json:"name"`
	Role      authctx.Role `json:"role"`
	PINHash   string       `json:"-"`
	IsActive  bool         `json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// CreateEmployeeRequest is the payload for adding a staff member.
type CreateEmployeeRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
	PIN  string `json:"pin"`
}
