package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/spending-nav/internal/model/customerr"
	"max.ks1230/spending-nav/internal/model/storage"
)

type stubIssuer struct{}

func (stubIssuer) Issue(userID string) (string, error) {
	return "token-for-" + userID, nil
}

func newTestService() (*Service, *storage.InMemStorage) {
	db := storage.NewInMemStorage()
	return NewService(db, stubIssuer{}), db
}

func Test_OnRegister_ShouldCreateUserWithZeroBudget(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService()

	err := svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "s3cret")
	require.NoError(t, err)

	rec, err := db.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec.FirstName)
	assert.Equal(t, 0.0, rec.Budget)
	assert.NotEmpty(t, rec.ID)
	assert.NotEqual(t, "s3cret", rec.PasswordHash)
}

func Test_OnRegister_ShouldRejectDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	require.NoError(t, svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "s3cret"))

	err := svc.Register(ctx, "Other", "Person", "ada@example.com", "different")
	assert.ErrorIs(t, err, customerr.ErrDuplicateEmail)
}

func Test_OnLogin_ShouldIssueTokenAndProfile(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService()

	require.NoError(t, svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "s3cret"))

	token, profile, err := svc.Login(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)

	rec, err := db.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "token-for-"+rec.ID, token)
	assert.Equal(t, rec.ID, profile.ID)
	assert.Equal(t, "Ada", profile.FirstName)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.Equal(t, 0.0, profile.Budget)
}

func Test_OnLogin_ShouldNotDistinguishWrongPasswordFromUnknownEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	require.NoError(t, svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "s3cret"))

	_, _, wrongPassword := svc.Login(ctx, "ada@example.com", "not-it")
	_, _, unknownEmail := svc.Login(ctx, "nobody@example.com", "whatever")

	assert.ErrorIs(t, wrongPassword, customerr.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, customerr.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func Test_OnSetBudget_ShouldOverwriteBudget(t *testing.T) {
	ctx := context.Background()
	svc, db := newTestService()

	require.NoError(t, svc.Register(ctx, "Ada", "Lovelace", "ada@example.com", "s3cret"))
	rec, err := db.GetUserByEmail(ctx, "ada@example.com")
	require.NoError(t, err)

	budget, err := svc.SetBudget(ctx, rec.ID, 250)
	require.NoError(t, err)
	assert.Equal(t, 250.0, budget)

	updated, err := db.GetUserByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, updated.Budget)
}

func Test_OnSetBudget_ShouldFailForUnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.SetBudget(ctx, "no-such-user", 100)
	assert.ErrorIs(t, err, customerr.ErrUserNotFound)
}
