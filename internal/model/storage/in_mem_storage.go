package storage

import (
	"context"
	"sort"
	"sync"

	"max.ks1230/spending-nav/internal/entity/expense"
	"max.ks1230/spending-nav/internal/entity/user"
	"max.ks1230/spending-nav/internal/model/customerr"
)

// InMemStorage implements the same operations as PostgresStorage over maps.
// It backs the tests and can serve as a dev standalone mode.
type InMemStorage struct {
	mu       sync.RWMutex
	users    map[string]user.Record
	byEmail  map[string]string
	expenses map[string][]expense.Record
}

func NewInMemStorage() *InMemStorage {
	return &InMemStorage{
		users:    make(map[string]user.Record),
		byEmail:  make(map[string]string),
		expenses: make(map[string][]expense.Record),
	}
}

func (s *InMemStorage) CreateUser(_ context.Context, rec user.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[rec.Email]; ok {
		return customerr.ErrDuplicateEmail
	}
	s.users[rec.ID] = rec
	s.byEmail[rec.Email] = rec.ID
	return nil
}

func (s *InMemStorage) GetUserByEmail(_ context.Context, email string) (user.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return user.Record{}, customerr.ErrUserNotFound
	}
	return s.users[id], nil
}

func (s *InMemStorage) GetUserByID(_ context.Context, id string) (user.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return user.Record{}, customerr.ErrUserNotFound
	}
	return u, nil
}

func (s *InMemStorage) SaveBudget(_ context.Context, userID string, budget float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return customerr.ErrUserNotFound
	}
	u.Budget = budget
	s.users[userID] = u
	return nil
}

func (s *InMemStorage) SaveExpense(_ context.Context, rec expense.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses[rec.UserID] = append(s.expenses[rec.UserID], rec)
	return nil
}

func (s *InMemStorage) GetUserExpenses(_ context.Context, userID string) ([]expense.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exps := make([]expense.Record, len(s.expenses[userID]))
	copy(exps, s.expenses[userID])
	sort.SliceStable(exps, func(i, j int) bool {
		return exps[i].Date.After(exps[j].Date)
	})
	return exps, nil
}
