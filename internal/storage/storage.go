package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	"github.com/carson-networks/wallet-server/internal/config"
	"github.com/carson-networks/wallet-server/internal/storage/category"
	"github.com/carson-networks/wallet-server/internal/storage/session"
	"github.com/carson-networks/wallet-server/internal/storage/transaction"
	"github.com/carson-networks/wallet-server/internal/storage/user"
)

// Storage aggregates the tables bound to the pooled connection. These handles
// are safe for reads and for writes that do not touch a user's balance;
// balance-affecting pipelines must go through Write so every step shares one
// transaction.
type Storage struct {
	DB           *sql.DB
	Users        user.IUserTable
	Categories   category.ICategoryTable
	Transactions transaction.ITransactionTable
	Sessions     session.ISessionTable
}

func NewStorage(env *config.Config) (*Storage, error) {
	db, err := sql.Open("postgres", env.ConnectionString())
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{
		DB:           db,
		Users:        user.NewTable(db),
		Categories:   category.NewTable(db),
		Transactions: transaction.NewTable(db),
		Sessions:     session.NewTable(db),
	}, nil
}

// Write begins a serializable transaction and returns a Writer whose tables
// all operate inside it. The caller must Commit or Rollback.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}

	writer := NewWriter(tx)
	return &writer, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
