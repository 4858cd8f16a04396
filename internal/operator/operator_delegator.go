package operator

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/wallet-server/internal/operator/actions"
	"github.com/carson-networks/wallet-server/internal/storage"
)

// OperatorDelegator starts and stops the workers and routes actions to them.
// Every action for the same owner hashes to the same queue, so balance
// pipelines for one user never interleave.
type OperatorDelegator struct {
	storage  *storage.Storage
	queues   []chan ActionItem
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewOperatorDelegator(s *storage.Storage, numWorkers int) *OperatorDelegator {
	if numWorkers < 1 {
		numWorkers = 1
	}

	queues := make([]chan ActionItem, numWorkers)
	for i := range queues {
		queues[i] = make(chan ActionItem, 1000)
	}

	return &OperatorDelegator{
		storage: s,
		queues:  queues,
	}
}

func (d *OperatorDelegator) Start() {
	for _, queue := range d.queues {
		d.wg.Add(1)
		op := NewOperator(d.storage, queue)
		go func() {
			defer d.wg.Done()
			op.Run()
		}()
	}
}

func (d *OperatorDelegator) Stop() {
	d.stopOnce.Do(func() {
		for _, queue := range d.queues {
			close(queue)
		}
		d.wg.Wait()
	})
}

// Process enqueues the action on its owner's queue and waits for the result.
func (d *OperatorDelegator) Process(ctx context.Context, action actions.IAction) error {
	respCh := make(chan ActionItemResponse, 1)
	item := ActionItem{
		ctx:      ctx,
		action:   action,
		response: respCh,
	}

	d.queues[d.queueIndex(action.Owner())] <- item

	select {
	case resp := <-respCh:
		return resp.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *OperatorDelegator) queueIndex(owner uuid.UUID) int {
	h := fnv.New32a()
	_, _ = h.Write(owner.Bytes())
	return int(h.Sum32() % uint32(len(d.queues)))
}
