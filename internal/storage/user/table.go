package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Queryer is satisfied by both *sql.DB and *sql.Tx so the same table can be
// bound to the pooled connection or to an open transaction.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

const uniqueViolation = "23505"

var _ IUserTable = (*Table)(nil)

type Table struct {
	exec Queryer
}

func NewTable(exec Queryer) *Table {
	return &Table{exec: exec}
}

func (t *Table) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	row := t.exec.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, balance, created_at, updated_at
		 FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (t *Table) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := t.exec.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, balance, created_at, updated_at
		 FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Insert creates a new user with a zero starting balance.
func (t *Table) Insert(ctx context.Context, create *UserCreate) (*User, error) {
	row := t.exec.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, name, email, password_hash, balance, created_at, updated_at`,
		create.Name, create.Email, create.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return created, nil
}

func (t *Table) SetBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error {
	_, err := t.exec.ExecContext(ctx,
		`UPDATE users SET balance = $2, updated_at = now() WHERE id = $1`,
		id, balance)
	return err
}

func scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Balance,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
