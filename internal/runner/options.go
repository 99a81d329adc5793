package runner

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
	"github.com/zhangpjbo/HttpPal-sub003/internal/sink"
)

// Executor performs one call and reports its outcome. Implementations never
// return errors for per-call failures; those travel inside the outcome.
type Executor interface {
	Execute(ctx context.Context, callIndex int64) result.Outcome
}

// Options configure the worker pool.
type Options struct {
	Workers        int   // number of concurrent workers
	Iterations     int   // sequential calls per worker
	RatePerSecond  int   // shared pacing across workers (0 means unpaced)
	Executor       Executor
	Sink           *sink.Sink
	LimiterFactory func(rps int) *rate.Limiter // optional injection for tests
}

func (o *Options) normalize() {
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Iterations <= 0 {
		o.Iterations = 1
	}
	if o.RatePerSecond < 0 {
		o.RatePerSecond = 0
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			if rps <= 0 {
				return rate.NewLimiter(rate.Inf, 0)
			}
			// Burst equal to rps to smooth pacing under concurrency.
			return rate.NewLimiter(rate.Limit(rps), rps)
		}
	}
}
