// Package runner schedules the calls of a run across a fixed pool of workers.
// Parallelism is bounded by the worker count alone: each worker issues its
// iterations strictly in order, and a failed call never stops the worker's
// remaining iterations or any sibling worker.
package runner

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// Pool runs Workers concurrent workers of Iterations sequential calls each.
type Pool struct {
	opt       Options
	limiter   *rate.Limiter
	nextIndex atomic.Int64
}

// New creates a Pool from options. Options are normalized so a zero worker or
// iteration count falls back to one.
func New(opt Options) *Pool {
	opt.normalize()
	return &Pool{
		opt:     opt,
		limiter: opt.LimiterFactory(opt.RatePerSecond),
	}
}

// Run blocks until every worker has finished its iterations or observed
// cancellation. Cancellation is cooperative: workers check the context before
// each iteration, and an in-flight call is aborted through its own context.
// Returns the number of calls dispatched.
func (p *Pool) Run(ctx context.Context) int64 {
	if ctx == nil {
		ctx = context.Background()
	}

	var wg sync.WaitGroup
	wg.Add(p.opt.Workers)
	for i := 0; i < p.opt.Workers; i++ {
		go func() {
			defer wg.Done()
			p.worker(ctx)
		}()
	}
	wg.Wait()

	return p.nextIndex.Load()
}

func (p *Pool) worker(ctx context.Context) {
	for iteration := 0; iteration < p.opt.Iterations; iteration++ {
		if ctx.Err() != nil {
			return
		}
		if err := p.limiter.Wait(ctx); err != nil {
			return
		}
		// The global call index is assigned at dispatch time so failures can
		// be correlated with the order calls were issued, not completed.
		index := p.nextIndex.Add(1) - 1
		outcome := p.opt.Executor.Execute(ctx, index)
		p.opt.Sink.Append(outcome)
	}
}
