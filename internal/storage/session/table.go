package session

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

var _ ISessionTable = (*Table)(nil)

type Table struct {
	exec Queryer
}

func NewTable(exec Queryer) *Table {
	return &Table{exec: exec}
}

func (t *Table) Insert(ctx context.Context, create *SessionCreate) (*Session, error) {
	row := t.exec.QueryRowContext(ctx,
		`INSERT INTO sessions (user_id, access_token, refresh_token, access_expires_at, refresh_expires_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, access_token, refresh_token, access_expires_at, refresh_expires_at, created_at`,
		create.UserID, create.AccessToken, create.RefreshToken,
		create.AccessExpiresAt, create.RefreshExpiresAt)
	return scanSession(row)
}

func (t *Table) FindByAccessToken(ctx context.Context, token string) (*Session, error) {
	row := t.exec.QueryRowContext(ctx,
		`SELECT id, user_id, access_token, refresh_token, access_expires_at, refresh_expires_at, created_at
		 FROM sessions WHERE access_token = $1`, token)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

func (t *Table) FindByRefreshToken(ctx context.Context, token string) (*Session, error) {
	row := t.exec.QueryRowContext(ctx,
		`SELECT id, user_id, access_token, refresh_token, access_expires_at, refresh_expires_at, created_at
		 FROM sessions WHERE refresh_token = $1`, token)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

func (t *Table) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := t.exec.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return err
}

func scanSession(row *sql.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.UserID, &s.AccessToken, &s.RefreshToken,
		&s.AccessExpiresAt, &s.RefreshExpiresAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
