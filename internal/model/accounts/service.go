// Package accounts implements registration, login and budget updates.
// Every operation is scoped by the user id the access guard resolved;
// nothing here trusts identifiers supplied in request bodies.
package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/spending-nav/internal/entity/user"
	"max.ks1230/spending-nav/internal/logger"
	"max.ks1230/spending-nav/internal/model/auth"
	"max.ks1230/spending-nav/internal/model/customerr"
)

type userStorage interface {
	CreateUser(ctx context.Context, rec user.Record) error
	GetUserByEmail(ctx context.Context, email string) (user.Record, error)
	GetUserByID(ctx context.Context, id string) (user.Record, error)
	SaveBudget(ctx context.Context, userID string, budget float64) error
}

type tokenIssuer interface {
	Issue(userID string) (string, error)
}

type Service struct {
	storage userStorage
	tokens  tokenIssuer
}

func NewService(storage userStorage, tokens tokenIssuer) *Service {
	return &Service{
		storage: storage,
		tokens:  tokens,
	}
}

// Register creates a user with a hashed password and a zero budget.
func (s *Service) Register(ctx context.Context, firstName, lastName, email, password string) error {
	_, err := s.storage.GetUserByEmail(ctx, email)
	if err == nil {
		return customerr.ErrDuplicateEmail
	}
	if !errors.Is(err, customerr.ErrUserNotFound) {
		return errors.Wrap(err, "register")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return errors.Wrap(err, "register")
	}

	rec := user.Record{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		Budget:       0,
		CreatedAt:    time.Now(),
	}
	if err = s.storage.CreateUser(ctx, rec); err != nil {
		return errors.Wrap(err, "register")
	}

	logger.Info("user registered", zap.String("userID", rec.ID))
	return nil
}

// Login checks the credentials and issues a token. An unknown email and a
// wrong password collapse into the same failure so the endpoint cannot be
// used to enumerate accounts.
func (s *Service) Login(ctx context.Context, email, password string) (string, user.Profile, error) {
	rec, err := s.storage.GetUserByEmail(ctx, email)
	if errors.Is(err, customerr.ErrUserNotFound) {
		return "", user.Profile{}, customerr.ErrInvalidCredentials
	}
	if err != nil {
		return "", user.Profile{}, errors.Wrap(err, "login")
	}

	if !auth.VerifyPassword(password, rec.PasswordHash) {
		return "", user.Profile{}, customerr.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(rec.ID)
	if err != nil {
		return "", user.Profile{}, errors.Wrap(err, "login")
	}

	logger.Info("user logged in", zap.String("userID", rec.ID))
	return token, rec.Profile(), nil
}

// SetBudget overwrites the user's budget. The id was already verified by the
// access guard, so a miss here means the account vanished underneath a live
// token and surfaces as ErrUserNotFound.
func (s *Service) SetBudget(ctx context.Context, userID string, budget float64) (float64, error) {
	if _, err := s.storage.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, customerr.ErrUserNotFound) {
			return 0, err
		}
		return 0, errors.Wrap(err, "set budget")
	}
	if err := s.storage.SaveBudget(ctx, userID, budget); err != nil {
		if errors.Is(err, customerr.ErrUserNotFound) {
			return 0, err
		}
		return 0, errors.Wrap(err, "set budget")
	}
	return budget, nil
}
