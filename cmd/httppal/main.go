package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/zhangpjbo/HttpPal-sub003/internal/config"
	"github.com/zhangpjbo/HttpPal-sub003/internal/engine"
	"github.com/zhangpjbo/HttpPal-sub003/internal/output"
	"github.com/zhangpjbo/HttpPal-sub003/internal/tracing"
)

type stderrFailureLogger struct {
	mu sync.Mutex
}

func (l *stderrFailureLogger) LogFailure(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(os.Stderr, "call failed: %v\n", err)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}

	descriptor, err := cfg.Descriptor()
	if err != nil {
		return err
	}
	params := cfg.Parameters()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		_ = provider.Shutdown(context.Background())
	}()

	opts := engine.Options{
		Captures:  cfg.CaptureSpecs(),
		Propagate: provider.ShouldPropagate(),
	}
	if provider.Active() {
		opts.Tracer = provider.Tracer()
	}
	if cfg.LogErrors {
		opts.FailureLogger = &stderrFailureLogger{}
	}

	hooks := engine.Hooks{}
	if !cfg.JSONOutput {
		hooks.OnProgress = func(completed, total int64) {
			fmt.Fprintf(os.Stdout, "\rCompleted %d/%d calls", completed, total)
		}
	}

	coordinator := engine.New(opts)
	handle, err := coordinator.Start(descriptor, params, hooks)
	if err != nil {
		return err
	}

	// Forward interrupt signals to the run as cooperative cancellation.
	go func() {
		<-ctx.Done()
		handle.Cancel()
	}()

	agg, err := handle.Wait()
	if err != nil {
		return err
	}
	if !cfg.JSONOutput {
		fmt.Fprintln(os.Stdout)
	}

	if cfg.JSONOutput {
		return output.PrintJSONReport(os.Stdout, agg)
	}
	output.PrintReport(os.Stdout, agg)
	return nil
}
