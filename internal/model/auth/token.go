package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"max.ks1230/spending-nav/internal/model/customerr"
)

type config interface {
	Secret() string
	TokenTTL() time.Duration
}

// TokenService signs and verifies the bearer tokens that carry a user
// identity between requests. The signing secret is read once at construction.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(config config) *TokenService {
	return &TokenService{
		secret: []byte(config.Secret()),
		ttl:    config.TokenTTL(),
	}
}

// Issue produces a signed token embedding userID with the configured expiry.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "issue token")
	}
	return token, nil
}

// Verify checks signature and expiry and returns the embedded user id.
// Malformed, forged and expired tokens all collapse into ErrInvalidToken so
// callers cannot leak which check failed.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", customerr.ErrInvalidToken
	}
	return claims.Subject, nil
}
