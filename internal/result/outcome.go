package result

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorKind classifies the cause of a failed call.
type ErrorKind string

const (
	KindNetwork        ErrorKind = "network"
	KindTimeout        ErrorKind = "timeout"
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindServerError    ErrorKind = "server_error"
	KindUnknown        ErrorKind = "unknown"
)

// Outcome is the recorded result of one dispatched call: either a Success or a Failure.
// A completed HTTP exchange is always a Success regardless of status code; Failure is
// reserved for calls that never produced a full response.
type Outcome interface {
	Index() int64
	OK() bool
}

// Success captures one completed HTTP exchange.
type Success struct {
	CallIndex    int64
	StatusCode   int
	StatusText   string
	Headers      http.Header
	Body         []byte
	BodySize     int64
	ResponseTime time.Duration
	Timestamp    time.Time
	Captures     map[string]string
}

func (s Success) Index() int64 { return s.CallIndex }
func (s Success) OK() bool     { return true }

// ExecutionError describes why a single call failed to complete.
type ExecutionError struct {
	Message   string
	Cause     string
	CallIndex int64
	Timestamp time.Time
	Kind      ErrorKind
}

func (e ExecutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Failure records a call that did not produce a complete response.
type Failure struct {
	Err ExecutionError
}

func (f Failure) Index() int64 { return f.Err.CallIndex }
func (f Failure) OK() bool     { return false }
