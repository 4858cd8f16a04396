package transaction

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Queryer is satisfied by both *sql.DB and *sql.Tx so the same table can be
// bound to the pooled connection or to an open transaction.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var _ ITransactionTable = (*Table)(nil)

type Table struct {
	exec Queryer
}

func NewTable(exec Queryer) *Table {
	return &Table{exec: exec}
}

const selectColumns = `
	t.id, t.user_id, t.type, t.category_id, c.name, c.type,
	t.amount, t.transaction_date, t.comment, t.created_at, t.updated_at`

func (t *Table) FindByOwner(ctx context.Context, id, userID uuid.UUID) (*Transaction, error) {
	row := t.exec.QueryRowContext(ctx,
		`SELECT `+selectColumns+`
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id
		 WHERE t.id = $1 AND t.user_id = $2`, id, userID)

	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tx, nil
}

// List returns the owner's transactions, most recent date first.
func (t *Table) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	query := `SELECT ` + selectColumns + `
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id
		 WHERE t.user_id = $1
		 ORDER BY t.transaction_date DESC, t.created_at DESC, t.id DESC`
	args := []any{filter.UserID}

	if filter.Limit > 0 {
		args = append(args, filter.Limit+1)
		query += ` LIMIT $2`
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		if filter.Limit > 0 {
			query += ` OFFSET $3`
		} else {
			query += ` OFFSET $2`
		}
	}

	rows, err := t.exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, tx)
	}
	return result, rows.Err()
}

// Insert creates a new transaction and returns it with the category expanded.
func (t *Table) Insert(ctx context.Context, create *TransactionCreate) (*Transaction, error) {
	var id uuid.UUID
	err := t.exec.QueryRowContext(ctx,
		`INSERT INTO transactions (user_id, type, category_id, amount, transaction_date, comment)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		create.UserID, create.Type, create.CategoryID, create.Amount,
		create.TransactionDate, create.Comment).Scan(&id)
	if err != nil {
		return nil, err
	}
	return t.FindByOwner(ctx, id, create.UserID)
}

// Update overwrites the mutable columns with the merged values. Returns
// (nil, nil) when the row is absent or owned by someone else.
func (t *Table) Update(ctx context.Context, id, userID uuid.UUID, update *TransactionUpdate) (*Transaction, error) {
	result, err := t.exec.ExecContext(ctx,
		`UPDATE transactions
		 SET type = $3, category_id = $4, amount = $5, transaction_date = $6,
		     comment = $7, updated_at = now()
		 WHERE id = $1 AND user_id = $2`,
		id, userID, update.Type, update.CategoryID, update.Amount,
		update.TransactionDate, update.Comment)
	if err != nil {
		return nil, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, nil
	}
	return t.FindByOwner(ctx, id, userID)
}

// Delete removes the row and reports whether anything was deleted.
func (t *Table) Delete(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	result, err := t.exec.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (t *Table) SumSignedAmounts(ctx context.Context, userID uuid.UUID, excludeID *uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		 FROM transactions WHERE user_id = $1`
	args := []any{userID}
	if excludeID != nil {
		query += ` AND id <> $2`
		args = append(args, *excludeID)
	}

	var sum decimal.Decimal
	if err := t.exec.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return decimal.Decimal{}, err
	}
	return sum, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*Transaction, error) {
	var tx Transaction
	err := row.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.CategoryID,
		&tx.CategoryName, &tx.CategoryType, &tx.Amount, &tx.TransactionDate,
		&tx.Comment, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
