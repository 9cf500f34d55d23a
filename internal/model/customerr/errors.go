// Package customerr holds the domain failures the handler boundary maps to
// HTTP statuses. Everything else is treated as an internal error.
package customerr

import (
	"github.com/pkg/errors"
)

var (
	ErrDuplicateEmail     = errors.New("user exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoToken            = errors.New("no token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrUserNotFound       = errors.New("user not found")
	ErrUnknownPeriod      = errors.New("unknown report period")
)
