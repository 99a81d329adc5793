package engine

import (
	"context"

	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
)

// Handle controls a run launched with Start.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	agg    result.Aggregate
	err    error
}

// Cancel requests cooperative cancellation. Idempotent and safe to call after
// the run has finished, in which case it is a no-op.
func (h *Handle) Cancel() {
	h.cancel()
}

// Done is closed once the run has reached a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the run finishes and returns its aggregate result. A
// cancelled run returns a valid partial aggregate and a nil error; only
// fatal scheduling conditions produce an error, with no aggregate.
func (h *Handle) Wait() (result.Aggregate, error) {
	<-h.done
	return h.agg, h.err
}
