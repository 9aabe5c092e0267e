package timeclock

import (
	"time"

	"github.com/google/uuid"
)

// TimeEntry is one shift punch. An entry with a nil ClockedOutAt is the
// employee's open shift; at most one exists per employee.
type TimeEntry struct {
	ID           uuid.UUID  `json:"id"`
	StoreID      uuid.UUID  `json:"store_id"`
	EmployeeID   uuid.UUID  `json:"employee_id"`
	ClockedInAt  time.Time  `json:"clocked_in_at"`
	ClockedOutAt *time.Time `json:"clocked_out_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
