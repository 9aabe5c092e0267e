package category

import (
	"time"

	"github.com/google/uuid"
)

// Category groups stock items within a store. Names are unique per store.
type Category struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"store_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertCategoryRequest is the payload for creating or updating a category.
type UpsertCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
