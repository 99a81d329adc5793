package executor_test

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/zhangpjbo/HttpPal-sub003/internal/executor"
	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
)

type timeoutNetError struct{}

func (timeoutNetError) Error() string   { return "i/o timeout" }
func (timeoutNetError) Timeout() bool   { return true }
func (timeoutNetError) Temporary() bool { return false }

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want result.ErrorKind
	}{
		{"deadline exceeded", context.DeadlineExceeded, result.KindTimeout},
		{"wrapped deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), result.KindTimeout},
		{"net timeout", timeoutNetError{}, result.KindTimeout},
		{"dns error", &net.DNSError{Err: "no such host", Name: "missing.invalid"}, result.KindNetwork},
		{"op error", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, result.KindNetwork},
		{
			"url error wrapping op error",
			&url.Error{Op: "Get", URL: "http://x", Err: &net.OpError{Op: "dial", Err: errors.New("refused")}},
			result.KindNetwork,
		},
		{
			"url error wrapping deadline",
			&url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded},
			result.KindTimeout,
		},
		{"unknown authority", x509.UnknownAuthorityError{}, result.KindAuthentication},
		{"cancelled in flight", context.Canceled, result.KindUnknown},
		{
			"url error wrapping cancel",
			&url.Error{Op: "Get", URL: "http://x", Err: context.Canceled},
			result.KindUnknown,
		},
		{"anything else", errors.New("mystery"), result.KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := executor.Classify(tc.err); got != tc.want {
				t.Fatalf("Classify(%v) = %s, want %s", tc.err, got, tc.want)
			}
		})
	}
}
