// Package request defines the resolved request descriptor the execution engine
// consumes. Environment and variable substitution happen upstream; a Descriptor
// arrives with base URL, headers, and parameters already merged.
package request

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

var placeholderPattern = regexp.MustCompile(`\{[^{}]+\}`)

// Descriptor is the immutable description of one logical HTTP request.
// It is created per run and safely shared across workers without synchronization.
type Descriptor struct {
	Method          string            `mapstructure:"method" yaml:"method"`
	URL             string            `mapstructure:"url" yaml:"url"`
	Headers         map[string]string `mapstructure:"headers" yaml:"headers"`
	Body            string            `mapstructure:"body" yaml:"body"`
	BodyFile        string            `mapstructure:"body_file" yaml:"body_file"`
	QueryParams     map[string]string `mapstructure:"query_params" yaml:"query_params"`
	PathParams      map[string]string `mapstructure:"path_params" yaml:"path_params"`
	Timeout         time.Duration     `mapstructure:"timeout" yaml:"timeout"`
	FollowRedirects bool              `mapstructure:"follow_redirects" yaml:"follow_redirects"`
}

// Expanded returns a copy with path parameters substituted into the URL and
// query parameters appended. The returned descriptor carries empty param maps.
func (d Descriptor) Expanded() (Descriptor, error) {
	target := strings.TrimSpace(d.URL)
	for key, value := range d.PathParams {
		target = strings.ReplaceAll(target, "{"+key+"}", url.PathEscape(value))
	}

	if len(d.QueryParams) > 0 {
		parsed, err := url.Parse(target)
		if err != nil {
			return Descriptor{}, fmt.Errorf("parse target URL: %w", err)
		}
		query := parsed.Query()
		for key, value := range d.QueryParams {
			query.Set(key, value)
		}
		parsed.RawQuery = query.Encode()
		target = parsed.String()
	}

	d.URL = target
	d.PathParams = nil
	d.QueryParams = nil
	return d, nil
}

// Validate checks the descriptor for pre-flight contract violations. A failure
// here means the run never starts; it is not a per-call failure outcome.
func (d Descriptor) Validate() error {
	target := strings.TrimSpace(d.URL)
	if target == "" {
		return fmt.Errorf("target URL is required")
	}

	parsed, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid target URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("target URL has no host")
	}

	if match := placeholderPattern.FindString(target); match != "" {
		return fmt.Errorf("unresolved placeholder %s in target URL", match)
	}

	method := strings.TrimSpace(d.Method)
	if method != "" && strings.ContainsAny(method, " \r\n") {
		return fmt.Errorf("invalid method %q", d.Method)
	}

	for key, value := range d.Headers {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" || strings.ContainsAny(trimmedKey, "\r\n") {
			return fmt.Errorf("invalid header key %q", key)
		}
		if http.CanonicalHeaderKey(trimmedKey) == "" {
			return fmt.Errorf("invalid header key %q", key)
		}
		if strings.ContainsAny(value, "\r\n") {
			return fmt.Errorf("invalid header value for %s", trimmedKey)
		}
	}

	if d.Body != "" && strings.TrimSpace(d.BodyFile) != "" {
		return fmt.Errorf("body and body file cannot both be provided")
	}
	if d.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0")
	}

	return nil
}

// ResolvedMethod returns the HTTP method, defaulting to GET.
func (d Descriptor) ResolvedMethod() string {
	method := strings.ToUpper(strings.TrimSpace(d.Method))
	if method == "" {
		return http.MethodGet
	}
	return method
}
