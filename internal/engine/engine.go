// Package engine coordinates one run of the concurrent request execution
// engine: it validates inputs, launches the worker pool, relays progress, and
// aggregates the sink's outcomes into the final result. Lifecycle is
// Idle -> Running -> {Completed | Cancelled | FatalError}; per-call failures
// are recorded as data and never surface as Go errors from a run.
package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/zhangpjbo/HttpPal-sub003/internal/executor"
	"github.com/zhangpjbo/HttpPal-sub003/internal/request"
	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
	"github.com/zhangpjbo/HttpPal-sub003/internal/runner"
	"github.com/zhangpjbo/HttpPal-sub003/internal/sink"
	"github.com/zhangpjbo/HttpPal-sub003/internal/stats"
)

const defaultProgressInterval = 100 * time.Millisecond

// Hooks are caller-owned callbacks for the async entry point. All fields are
// optional. OnProgress receives non-decreasing, deduplicated completed counts.
type Hooks struct {
	OnProgress  func(completed, total int64)
	OnComplete  func(result.Aggregate)
	OnCancelled func(result.Aggregate)
	OnFatal     func(error)
}

// Options configure a Coordinator.
type Options struct {
	Transport        executor.Transport // nil means a tuned *http.Client per run
	Captures         []executor.CaptureSpec
	Tracer           trace.Tracer
	Propagate        bool
	FailureLogger    executor.FailureLogger
	ProgressInterval time.Duration
}

// Coordinator owns the lifecycle of a single run. Create a new Coordinator for
// each run; a second start is rejected with ErrAlreadyStarted.
type Coordinator struct {
	opt   Options
	state atomic.Int32
}

// New creates a Coordinator in the Idle state.
func New(opt Options) *Coordinator {
	if opt.ProgressInterval <= 0 {
		opt.ProgressInterval = defaultProgressInterval
	}
	c := &Coordinator{opt: opt}
	c.state.Store(int32(StateIdle))
	return c
}

// State returns the current lifecycle state.
func (c *Coordinator) State() State {
	return State(c.state.Load())
}

// Run executes the run synchronously and returns its aggregate result.
// Cancellation through ctx is not an error: the returned aggregate covers
// whatever calls resolved before the workers stopped.
func (c *Coordinator) Run(ctx context.Context, d request.Descriptor, p Parameters) (result.Aggregate, error) {
	return c.run(ctx, d, p, Hooks{})
}

// Start launches the run asynchronously and returns a cancellation handle.
// Pre-flight validation failures are returned immediately with no state
// transition and no goroutine spawned.
func (c *Coordinator) Start(d request.Descriptor, p Parameters, hooks Hooks) (*Handle, error) {
	if err := c.preflight(d, p); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.agg, h.err = c.run(ctx, d, p, hooks)
	}()
	return h, nil
}

func (c *Coordinator) preflight(d request.Descriptor, p Parameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	expanded, err := d.Expanded()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	if err := expanded.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}
	return nil
}

func (c *Coordinator) run(ctx context.Context, d request.Descriptor, p Parameters, hooks Hooks) (result.Aggregate, error) {
	if err := c.preflight(d, p); err != nil {
		return result.Aggregate{}, err
	}
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return result.Aggregate{}, ErrAlreadyStarted
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// Expansion succeeded in preflight.
	expanded, _ := d.Expanded()

	transport := c.opt.Transport
	if transport == nil {
		transport = request.NewClient(expanded.FollowRedirects)
	}

	exec, err := executor.New(expanded, executor.Options{
		Transport: transport,
		Captures:  c.opt.Captures,
		Tracer:    c.opt.Tracer,
		Propagate: c.opt.Propagate,
		Logger:    c.opt.FailureLogger,
		Timeout:   expanded.Timeout,
	})
	if err != nil {
		c.state.Store(int32(StateFatalError))
		fatal := fmt.Errorf("%w: %v", ErrFatalScheduling, err)
		if hooks.OnFatal != nil {
			hooks.OnFatal(fatal)
		}
		return result.Aggregate{}, fatal
	}

	total := p.TotalCalls()
	snk := sink.New(total)
	pool := runner.New(runner.Options{
		Workers:       p.Threads,
		Iterations:    p.Iterations,
		RatePerSecond: p.RatePerSecond,
		Executor:      exec,
		Sink:          snk,
	})

	var notifier *progressNotifier
	if hooks.OnProgress != nil {
		notifier = newProgressNotifier(snk, total, c.opt.ProgressInterval, hooks.OnProgress)
		notifier.start()
	}

	startTime := time.Now()
	pool.Run(ctx)
	endTime := time.Now()

	if notifier != nil {
		notifier.stop()
	}

	cancelled := ctx.Err() != nil
	agg := stats.Aggregate(stats.Input{
		Outcomes:   snk.Outcomes(),
		StartTime:  startTime,
		EndTime:    endTime,
		Threads:    p.Threads,
		Iterations: p.Iterations,
		Descriptor: expanded,
		Cancelled:  cancelled,
		RunID:      ulid.Make().String(),
	})

	if cancelled {
		c.state.Store(int32(StateCancelled))
		if hooks.OnCancelled != nil {
			hooks.OnCancelled(agg)
		}
	} else {
		c.state.Store(int32(StateCompleted))
		if hooks.OnComplete != nil {
			hooks.OnComplete(agg)
		}
	}
	return agg, nil
}
