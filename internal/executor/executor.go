// Package executor issues one HTTP call per invocation and converts every
// transport-level condition into a recorded outcome. It never returns an error
// for ordinary network or protocol failures; those become Failure outcomes with
// a best-effort kind classification. A completed exchange is always a Success,
// whatever its status code.
package executor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zhangpjbo/HttpPal-sub003/internal/request"
	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
	"github.com/zhangpjbo/HttpPal-sub003/internal/tracing"
)

// Transport abstracts the HTTP capability the executor delegates to.
// *http.Client satisfies it.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// FailureLogger receives failed call outcomes for diagnostic logging.
type FailureLogger interface {
	LogFailure(err error)
}

// Options configure an Executor.
type Options struct {
	Transport Transport
	Captures  []CaptureSpec
	Tracer    trace.Tracer
	Propagate bool
	Logger    FailureLogger
	Timeout   time.Duration
}

// Executor performs single calls for one descriptor. Safe for concurrent use.
type Executor struct {
	opt     Options
	builder *request.Builder
}

// New prepares an Executor for the given descriptor. The descriptor must have
// been validated; construction fails only on body source problems, which the
// coordinator treats as fatal scheduling errors.
func New(d request.Descriptor, opt Options) (*Executor, error) {
	if opt.Transport == nil {
		return nil, fmt.Errorf("transport is required")
	}
	builder, err := request.NewBuilder(d)
	if err != nil {
		return nil, fmt.Errorf("prepare request builder: %w", err)
	}
	if opt.Timeout == 0 {
		opt.Timeout = d.Timeout
	}
	return &Executor{opt: opt, builder: builder}, nil
}

// Execute issues one call and returns its outcome. Response time spans from
// call start to full body materialization, so slow body downloads are charged
// to the call that incurred them.
func (e *Executor) Execute(ctx context.Context, callIndex int64) result.Outcome {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.opt.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opt.Timeout)
		defer cancel()
	}

	var span trace.Span
	if e.opt.Tracer != nil {
		ctx, span = tracing.StartCallSpan(ctx, e.opt.Tracer, callIndex)
	}

	start := time.Now()

	req, err := e.builder.Build(ctx)
	if err != nil {
		return e.failure(span, callIndex, start, result.KindValidation, err)
	}
	if span != nil && e.opt.Propagate {
		tracing.InjectHTTPHeaders(ctx, req.Header)
	}

	resp, err := e.opt.Transport.Do(req)
	if err != nil {
		return e.failure(span, callIndex, start, Classify(err), err)
	}

	body, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	latency := time.Since(start)
	if readErr != nil {
		return e.failure(span, callIndex, start, Classify(readErr), fmt.Errorf("read response body: %w", readErr))
	}

	success := result.Success{
		CallIndex:    callIndex,
		StatusCode:   resp.StatusCode,
		StatusText:   resp.Status,
		Headers:      resp.Header,
		Body:         body,
		BodySize:     int64(len(body)),
		ResponseTime: latency,
		Timestamp:    start,
	}
	if len(e.opt.Captures) > 0 {
		success.Captures = ExtractCaptures(body, e.opt.Captures)
	}

	if span != nil {
		tracing.EndSpan(span, nil,
			attribute.Int("http.response.status_code", resp.StatusCode),
			attribute.Int64("http.response.body.size", success.BodySize),
		)
	}
	return success
}

func (e *Executor) failure(span trace.Span, callIndex int64, start time.Time, kind result.ErrorKind, err error) result.Outcome {
	execErr := result.ExecutionError{
		Message:   err.Error(),
		Cause:     fmt.Sprintf("%T", err),
		CallIndex: callIndex,
		Timestamp: start,
		Kind:      kind,
	}
	if span != nil {
		tracing.EndSpan(span, err, attribute.String("httppal.error_kind", string(kind)))
	}
	if e.opt.Logger != nil {
		e.opt.Logger.LogFailure(execErr)
	}
	return result.Failure{Err: execErr}
}
