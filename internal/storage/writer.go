package storage

import (
	"database/sql"

	"github.com/carson-networks/wallet-server/internal/storage/category"
	"github.com/carson-networks/wallet-server/internal/storage/transaction"
	"github.com/carson-networks/wallet-server/internal/storage/user"
)

// Writer exposes the tables bound to a single open transaction.
type Writer struct {
	tx           *sql.Tx
	Users        user.IUserTable
	Categories   category.ICategoryTable
	Transactions transaction.ITransactionTable
}

func NewWriter(tx *sql.Tx) Writer {
	return Writer{
		tx:           tx,
		Users:        user.NewTable(tx),
		Categories:   category.NewTable(tx),
		Transactions: transaction.NewTable(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit()
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback()
}
