package user

import (
	"time"
)

// Record is the persisted user row. PasswordHash never leaves the backend.
type Record struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Budget       float64
	CreatedAt    time.Time
}

// Profile is the client-facing view of a user.
type Profile struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	Email     string  `json:"email"`
	Budget    float64 `json:"budget"`
}

func (r Record) Profile() Profile {
	return Profile{
		ID:        r.ID,
		FirstName: r.FirstName,
		Email:     r.Email,
		Budget:    r.Budget,
	}
}
