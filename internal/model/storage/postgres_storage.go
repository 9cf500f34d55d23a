package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/spending-nav/internal/entity/expense"
	"max.ks1230/spending-nav/internal/entity/user"
	"max.ks1230/spending-nav/internal/logger"
	"max.ks1230/spending-nav/internal/model/customerr"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=disable"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		budget DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		category TEXT NOT NULL DEFAULT '',
		amount DOUBLE PRECISION NOT NULL,
		expense_date TIMESTAMPTZ NOT NULL,
		note TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS expenses_user_id_idx ON expenses (user_id)`,
}

type config interface {
	Host() string
	Username() string
	Password() string
	Database() string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config config) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	return &PostgresStorage{db}, nil
}

// Migrate brings the schema up. Every statement is idempotent.
func (s *PostgresStorage) Migrate(ctx context.Context) error {
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return errors.Wrap(err, "migrate")
		}
	}
	return nil
}

func (s *PostgresStorage) CreateUser(ctx context.Context, rec user.Record) error {
	query := psql.Insert("users").
		Columns("id", "first_name", "last_name", "email", "password_hash", "budget", "created_at").
		Values(rec.ID, rec.FirstName, rec.LastName, rec.Email, rec.PasswordHash, rec.Budget, rec.CreatedAt)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "create user")
}

func (s *PostgresStorage) GetUserByEmail(ctx context.Context, email string) (user.Record, error) {
	query := psql.Select("id", "first_name", "last_name", "email", "password_hash", "budget", "created_at").
		From("users").
		Where(sq.Eq{"email": email})

	return s.scanUser(query.RunWith(s.db).QueryRowContext(ctx))
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, id string) (user.Record, error) {
	query := psql.Select("id", "first_name", "last_name", "email", "password_hash", "budget", "created_at").
		From("users").
		Where(sq.Eq{"id": id})

	return s.scanUser(query.RunWith(s.db).QueryRowContext(ctx))
}

func (s *PostgresStorage) scanUser(row sq.RowScanner) (user.Record, error) {
	var res user.Record
	err := row.Scan(&res.ID, &res.FirstName, &res.LastName, &res.Email,
		&res.PasswordHash, &res.Budget, &res.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Record{}, customerr.ErrUserNotFound
	}
	if err != nil {
		return user.Record{}, errors.Wrap(err, "get user")
	}
	return res, nil
}

func (s *PostgresStorage) SaveBudget(ctx context.Context, userID string, budget float64) error {
	query := psql.Update("users").
		Set("budget", budget).
		Where(sq.Eq{"id": userID})

	res, err := query.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "save budget")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "save budget")
	}
	if affected == 0 {
		return customerr.ErrUserNotFound
	}
	return nil
}

func (s *PostgresStorage) SaveExpense(ctx context.Context, rec expense.Record) error {
	query := psql.Insert("expenses").
		Columns("id", "user_id", "category", "amount", "expense_date", "note").
		Values(rec.ID, rec.UserID, rec.Category, rec.Amount, rec.Date, rec.Note)

	_, err := query.RunWith(s.db).ExecContext(ctx)
	return errors.Wrap(err, "save expense")
}

func (s *PostgresStorage) GetUserExpenses(ctx context.Context, userID string) ([]expense.Record, error) {
	query := psql.Select("id", "user_id", "category", "amount", "expense_date", "note").
		From("expenses").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("expense_date DESC")

	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "get expenses")
	}
	defer func() {
		rowErr := rows.Close()
		if rowErr != nil {
			logger.Error("error closing rows", zap.Error(rowErr))
		}
	}()

	exps := make([]expense.Record, 0)
	for rows.Next() {
		var e expense.Record
		err = rows.Scan(&e.ID, &e.UserID, &e.Category, &e.Amount, &e.Date, &e.Note)
		if err != nil {
			return nil, errors.Wrap(err, "get expenses")
		}
		exps = append(exps, e)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "get expenses")
	}

	return exps, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
