package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidParameters marks a pre-flight rejection of execution parameters.
var ErrInvalidParameters = errors.New("invalid execution parameters")

// ErrInvalidDescriptor marks a pre-flight rejection of the request descriptor.
var ErrInvalidDescriptor = errors.New("invalid request descriptor")

// ErrAlreadyStarted is returned when a coordinator is started twice; each run
// gets its own coordinator.
var ErrAlreadyStarted = errors.New("run already started")

// ErrFatalScheduling marks a batch-level failure that prevented the run from
// executing; no aggregate result exists in this case.
var ErrFatalScheduling = errors.New("fatal scheduling error")

// Parameters fix the shape of one run: Threads workers each performing
// Iterations sequential calls. TotalCalls is constant for the run's lifetime.
type Parameters struct {
	Threads       int
	Iterations    int
	RatePerSecond int // optional shared pacing, 0 means unpaced
}

// TotalCalls returns Threads * Iterations.
func (p Parameters) TotalCalls() int64 {
	return int64(p.Threads) * int64(p.Iterations)
}

// Validate rejects parameters that must fail fast before any state transition.
func (p Parameters) Validate() error {
	if p.Threads < 1 {
		return fmt.Errorf("%w: threads must be >= 1, got %d", ErrInvalidParameters, p.Threads)
	}
	if p.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be >= 1, got %d", ErrInvalidParameters, p.Iterations)
	}
	if p.RatePerSecond < 0 {
		return fmt.Errorf("%w: rate must be >= 0, got %d", ErrInvalidParameters, p.RatePerSecond)
	}
	return nil
}
