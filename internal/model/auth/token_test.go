package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/spending-nav/internal/model/customerr"
)

type stubAuthConfig struct {
	secret string
	ttl    time.Duration
}

func (c stubAuthConfig) Secret() string {
	return c.secret
}

func (c stubAuthConfig) TokenTTL() time.Duration {
	return c.ttl
}

func Test_OnIssue_ShouldVerifyToSameUserID(t *testing.T) {
	svc := NewTokenService(stubAuthConfig{secret: "supersecret", ttl: time.Hour})

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func Test_OnVerify_ShouldRejectExpiredToken(t *testing.T) {
	svc := NewTokenService(stubAuthConfig{secret: "supersecret", ttl: -time.Minute})

	token, err := svc.Issue("user-123")
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, customerr.ErrInvalidToken)
}

func Test_OnVerify_ShouldRejectForeignSignature(t *testing.T) {
	issuer := NewTokenService(stubAuthConfig{secret: "one secret", ttl: time.Hour})
	verifier := NewTokenService(stubAuthConfig{secret: "another secret", ttl: time.Hour})

	token, err := issuer.Issue("user-123")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, customerr.ErrInvalidToken)
}

func Test_OnVerify_ShouldRejectGarbage(t *testing.T) {
	svc := NewTokenService(stubAuthConfig{secret: "supersecret", ttl: time.Hour})

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, customerr.ErrInvalidToken)
	}
}
