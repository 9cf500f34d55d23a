package expense

import (
	"time"
)

// Record is a single spending event owned by exactly one user.
type Record struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user"`
	Category string    `json:"category"`
	Amount   float64   `json:"amount"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note"`
}
