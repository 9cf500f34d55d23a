// Package ledger records and lists the expenses owned by a user.
package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"max.ks1230/spending-nav/internal/entity/expense"
	"max.ks1230/spending-nav/internal/model/period"
)

type expenseStorage interface {
	SaveExpense(ctx context.Context, rec expense.Record) error
	GetUserExpenses(ctx context.Context, userID string) ([]expense.Record, error)
}

type Service struct {
	storage expenseStorage
}

func NewService(storage expenseStorage) *Service {
	return &Service{storage: storage}
}

// AddExpense persists a spending event owned by userID and returns the stored
// record. Amount sign and category vocabulary are deliberately unchecked.
func (s *Service) AddExpense(ctx context.Context, userID, category string, amount float64, date time.Time, note string) (expense.Record, error) {
	if date.IsZero() {
		date = time.Now()
	}
	rec := expense.Record{
		ID:       uuid.NewString(),
		UserID:   userID,
		Category: category,
		Amount:   amount,
		Date:     date,
		Note:     note,
	}
	if err := s.storage.SaveExpense(ctx, rec); err != nil {
		return expense.Record{}, errors.Wrap(err, "add expense")
	}
	return rec, nil
}

// ListExpenses returns the user's expenses most recent first, optionally
// restricted to the named period. Order among equal dates is unspecified.
func (s *Service) ListExpenses(ctx context.Context, userID, periodName string) ([]expense.Record, error) {
	after, err := period.Start(periodName)
	if err != nil {
		return nil, err
	}

	exps, err := s.storage.GetUserExpenses(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list expenses")
	}
	exps = filterExpensesAfter(exps, after)
	sort.SliceStable(exps, func(i, j int) bool {
		return exps[i].Date.After(exps[j].Date)
	})
	return exps, nil
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
