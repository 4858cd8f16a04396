package category

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
)

// Queryer is satisfied by both *sql.DB and *sql.Tx so the same table can be
// bound to the pooled connection or to an open transaction.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var _ ICategoryTable = (*Table)(nil)

type Table struct {
	exec Queryer
}

func NewTable(exec Queryer) *Table {
	return &Table{exec: exec}
}

// FindByID retrieves a category by primary key. Missing rows are reported as
// (nil, nil), not as an error.
func (t *Table) FindByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	row := t.exec.QueryRowContext(ctx,
		`SELECT id, name, type FROM categories WHERE id = $1`, id)

	var cat Category
	if err := row.Scan(&cat.ID, &cat.Name, &cat.Type); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cat, nil
}

// List returns categories sorted by name, optionally restricted to one type.
func (t *Table) List(ctx context.Context, filter *CategoryFilter) ([]*Category, error) {
	query := `SELECT id, name, type FROM categories`
	var args []any
	if filter != nil && filter.Type != nil {
		query += ` WHERE type = $1`
		args = append(args, *filter.Type)
	}
	query += ` ORDER BY name ASC, id ASC`

	rows, err := t.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Type); err != nil {
			return nil, err
		}
		result = append(result, &cat)
	}
	return result, rows.Err()
}
