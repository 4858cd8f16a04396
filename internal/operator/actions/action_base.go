package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-server/internal/storage"
)

// IAction is one balance-affecting pipeline. Perform runs every step against
// a single open transaction; the operator commits only when it returns nil.
type IAction interface {
	// Owner identifies the user whose balance the action touches. The
	// delegator routes all actions for one owner to the same worker.
	Owner() uuid.UUID
	Perform(ctx context.Context, writer *storage.Writer) error
}
