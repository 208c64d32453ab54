package worker

import (
	"context"
	"sync"
)

// Batch fans a set of tasks out over a Pool and waits for all of them.
type Batch struct {
	pool *Pool
	ctx  context.Context
	wg   sync.WaitGroup
}

// NewBatch starts a batch bound to ctx.
func (p *Pool) NewBatch(ctx context.Context) *Batch {
	return &Batch{pool: p, ctx: ctx}
}

// Go submits fn. When it cannot be queued, onReject runs synchronously with
// the submit error so the caller can record the item as failed.
func (b *Batch) Go(fn func(ctx context.Context), onReject func(error)) {
	b.wg.Add(1)
	err := b.pool.Submit(b.ctx, func(ctx context.Context) error {
		defer b.wg.Done()
		fn(ctx)
		return nil
	})
	if err != nil {
		b.wg.Done()
		if onReject != nil {
			onReject(err)
		}
	}
}

// Wait blocks until every queued task has run.
func (b *Batch) Wait() {
	b.wg.Wait()
}
