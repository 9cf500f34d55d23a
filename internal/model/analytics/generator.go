// Package analytics computes spending summaries on demand from the raw
// ledger. No aggregate is persisted; every call is a full scan of the
// user's expenses.
package analytics

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/spending-nav/internal/entity/expense"
	"max.ks1230/spending-nav/internal/entity/user"
	"max.ks1230/spending-nav/internal/logger"
	"max.ks1230/spending-nav/internal/model/period"
)

type expensesStorage interface {
	GetUserByID(ctx context.Context, userID string) (user.Record, error)
	GetUserExpenses(ctx context.Context, userID string) ([]expense.Record, error)
}

// Summary is the client-facing spending report.
type Summary struct {
	Budget     float64            `json:"budget"`
	TotalSpent float64            `json:"totalSpent"`
	Remaining  float64            `json:"remaining"`
	ByCategory map[string]float64 `json:"byCategory"`
}

type Generator struct {
	storage expensesStorage
}

func NewGenerator(storage expensesStorage) *Generator {
	return &Generator{storage: storage}
}

// Generate builds the summary for one user: total spent, remaining budget
// (floored at zero) and per-category sums keyed by the labels exactly as
// stored.
func (g *Generator) Generate(ctx context.Context, userID, periodName string) (Summary, error) {
	logger.Info("Generate summary - start", zap.String("userID", userID), zap.String("period", periodName))
	defer logger.Info("Generate summary - end")

	after, err := period.Start(periodName)
	if err != nil {
		return Summary{}, err
	}

	userRec, err := g.storage.GetUserByID(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	expenses, err := g.storage.GetUserExpenses(ctx, userID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "generate summary")
	}
	expenses = filterExpensesAfter(expenses, after)

	byCategory := make(map[string]float64, len(expenses))
	total := 0.0
	for _, exp := range expenses {
		byCategory[exp.Category] += exp.Amount
		total += exp.Amount
	}

	remaining := userRec.Budget - total
	if remaining < 0 {
		remaining = 0
	}

	return Summary{
		Budget:     userRec.Budget,
		TotalSpent: total,
		Remaining:  remaining,
		ByCategory: byCategory,
	}, nil
}

func filterExpensesAfter(exps []expense.Record, after time.Time) []expense.Record {
	res := make([]expense.Record, 0, len(exps))
	for _, exp := range exps {
		if after.Before(exp.Date) {
			res = append(res, exp)
		}
	}
	return res
}
