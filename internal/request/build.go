package request

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Builder constructs *http.Request values from a validated descriptor.
// It is immutable after construction and safe for concurrent use.
type Builder struct {
	method  string
	target  string
	headers http.Header
	body    BodySource
}

// NewBuilder prepares a Builder. The descriptor should already be expanded
// and validated; NewBuilder only fails on body source problems.
func NewBuilder(d Descriptor) (*Builder, error) {
	body, err := NewBodySource(d)
	if err != nil {
		return nil, err
	}

	headers := http.Header{}
	for key, value := range d.Headers {
		headers.Set(http.CanonicalHeaderKey(strings.TrimSpace(key)), value)
	}

	return &Builder{
		method:  d.ResolvedMethod(),
		target:  strings.TrimSpace(d.URL),
		headers: headers,
		body:    body,
	}, nil
}

// Build creates a fresh request bound to ctx.
func (b *Builder) Build(ctx context.Context) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	reader, err := b.body.NewReader()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, b.method, b.target, reader)
	if err != nil {
		_ = reader.Close()
		return nil, err
	}

	req.Header = make(http.Header, len(b.headers))
	for key, values := range b.headers {
		for _, val := range values {
			req.Header.Add(key, val)
		}
	}

	if length, ok := b.body.ContentLength(); ok {
		req.ContentLength = length
	}
	req.GetBody = func() (io.ReadCloser, error) {
		return b.body.NewReader()
	}

	return req, nil
}

// NewClient creates an HTTP client tuned for many concurrent sequential callers.
// Per-call timeouts are enforced through request contexts, not the client, so a
// cancelled run can abort in-flight calls immediately.
func NewClient(followRedirects bool) *http.Client {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   32,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	client := &http.Client{Transport: transport}
	if !followRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}
	return client
}
