package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"max.ks1230/spending-nav/internal/entity/expense"
	"max.ks1230/spending-nav/internal/entity/user"
	"max.ks1230/spending-nav/internal/model/customerr"
	"max.ks1230/spending-nav/internal/model/storage"
)

func seedUser(t *testing.T, db *storage.InMemStorage, budget float64) string {
	t.Helper()
	rec := user.Record{
		ID:           "user-1",
		FirstName:    "Ada",
		Email:        "ada@example.com",
		PasswordHash: "irrelevant",
		Budget:       budget,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, db.CreateUser(context.Background(), rec))
	return rec.ID
}

func seedExpense(t *testing.T, db *storage.InMemStorage, userID, category string, amount float64, date time.Time) {
	t.Helper()
	require.NoError(t, db.SaveExpense(context.Background(), expense.Record{
		ID:       category + "-" + date.String(),
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Date:     date,
	}))
}

func Test_OnGenerate_ShouldSumTotalsAndFloorRemaining(t *testing.T) {
	ctx := context.Background()
	db := storage.NewInMemStorage()
	userID := seedUser(t, db, 80)

	now := time.Now()
	seedExpense(t, db, userID, "A", 30, now)
	seedExpense(t, db, userID, "B", 20, now)
	seedExpense(t, db, userID, "A", 50, now)

	summary, err := NewGenerator(db).Generate(ctx, userID, "")
	require.NoError(t, err)

	assert.Equal(t, 80.0, summary.Budget)
	assert.Equal(t, 100.0, summary.TotalSpent)
	assert.Equal(t, 0.0, summary.Remaining)
	assert.Equal(t, map[string]float64{"A": 80, "B": 20}, summary.ByCategory)
}

func Test_OnGenerate_ShouldReportRemainingUnderBudget(t *testing.T) {
	ctx := context.Background()
	db := storage.NewInMemStorage()
	userID := seedUser(t, db, 500)

	seedExpense(t, db, userID, "food", 120.5, time.Now())

	summary, err := NewGenerator(db).Generate(ctx, userID, "")
	require.NoError(t, err)

	assert.Equal(t, 120.5, summary.TotalSpent)
	assert.Equal(t, 379.5, summary.Remaining)
}

func Test_OnGenerate_ShouldReturnZerosForEmptyLedger(t *testing.T) {
	ctx := context.Background()
	db := storage.NewInMemStorage()
	userID := seedUser(t, db, 100)

	summary, err := NewGenerator(db).Generate(ctx, userID, "")
	require.NoError(t, err)

	assert.Equal(t, 0.0, summary.TotalSpent)
	assert.Equal(t, 100.0, summary.Remaining)
	assert.NotNil(t, summary.ByCategory)
	assert.Empty(t, summary.ByCategory)
}

func Test_OnGenerate_ShouldKeepCategoryLabelsVerbatim(t *testing.T) {
	ctx := context.Background()
	db := storage.NewInMemStorage()
	userID := seedUser(t, db, 0)

	seedExpense(t, db, userID, "Food", 1, time.Now())
	seedExpense(t, db, userID, "food", 2, time.Now())

	summary, err := NewGenerator(db).Generate(ctx, userID, "")
	require.NoError(t, err)

	// No normalization, no case folding.
	assert.Equal(t, map[string]float64{"Food": 1, "food": 2}, summary.ByCategory)
}

func Test_OnGenerate_ShouldFilterByPeriod(t *testing.T) {
	ctx := context.Background()
	db := storage.NewInMemStorage()
	userID := seedUser(t, db, 100)

	seedExpense(t, db, userID, "food", 10, time.Now())
	seedExpense(t, db, userID, "food", 99, time.Now().AddDate(-2, 0, 0))

	summary, err := NewGenerator(db).Generate(ctx, userID, "year")
	require.NoError(t, err)

	assert.Equal(t, 10.0, summary.TotalSpent)
	assert.Equal(t, 90.0, summary.Remaining)
}

func Test_OnGenerate_ShouldFailForUnknownUser(t *testing.T) {
	ctx := context.Background()
	db := storage.NewInMemStorage()

	_, err := NewGenerator(db).Generate(ctx, "no-such-user", "")
	assert.ErrorIs(t, err, customerr.ErrUserNotFound)
}

func Test_OnGenerate_ShouldRejectUnknownPeriod(t *testing.T) {
	ctx := context.Background()
	db := storage.NewInMemStorage()
	userID := seedUser(t, db, 100)

	_, err := NewGenerator(db).Generate(ctx, userID, "quarter")
	assert.ErrorIs(t, err, customerr.ErrUnknownPeriod)
}
