// Package config loads and validates the CLI configuration for httppal runs.
// Values merge in precedence order: built-in defaults, then the config file,
// then command-line flag overrides.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/zhangpjbo/HttpPal-sub003/internal/engine"
	"github.com/zhangpjbo/HttpPal-sub003/internal/executor"
	"github.com/zhangpjbo/HttpPal-sub003/internal/request"
	"github.com/zhangpjbo/HttpPal-sub003/internal/tracing"
)

type Config struct {
	Target          string            `mapstructure:"target"`
	Method          string            `mapstructure:"method"`
	Headers         map[string]string `mapstructure:"headers"`
	Body            string            `mapstructure:"body"`
	BodyFile        string            `mapstructure:"body_file"`
	QueryParams     map[string]string `mapstructure:"query_params"`
	PathParams      map[string]string `mapstructure:"path_params"`
	Threads         int               `mapstructure:"threads"`
	Iterations      int               `mapstructure:"iterations"`
	Rate            int               `mapstructure:"rate"`
	Timeout         time.Duration     `mapstructure:"timeout"`
	FollowRedirects bool              `mapstructure:"follow_redirects"`
	Captures        map[string]string `mapstructure:"captures"`
	RequestFile     string            `mapstructure:"request_file"`
	JSONOutput      bool              `mapstructure:"json_output"`
	LogErrors       bool              `mapstructure:"log_errors"`
	Tracing         tracing.Config    `mapstructure:"tracing"`
	ConfigFile      string            `mapstructure:"-"`
}

// Validate collects configuration issues. Warnings go to stderr; issues fail
// the load.
func (c Config) Validate() error {
	var issues []string

	if strings.TrimSpace(c.Target) == "" && strings.TrimSpace(c.RequestFile) == "" {
		issues = append(issues, "target is required (use --help for usage information)")
	}

	if c.Threads > 500 {
		fmt.Fprintf(os.Stderr, "WARNING: High thread count configured (%d workers). Ensure you have authorization to test the target system.\n", c.Threads)
	}

	if c.Threads < 1 {
		issues = append(issues, "threads must be >= 1")
	}
	if c.Iterations < 1 {
		issues = append(issues, "iterations must be >= 1")
	}
	if c.Rate < 0 {
		issues = append(issues, "rate must be >= 0")
	}
	if c.Timeout < 0 {
		issues = append(issues, "timeout must be >= 0")
	}
	if c.Body != "" && strings.TrimSpace(c.BodyFile) != "" {
		issues = append(issues, "body and body-file cannot both be provided")
	}
	for name, path := range c.Captures {
		if strings.TrimSpace(name) == "" || strings.TrimSpace(path) == "" {
			issues = append(issues, fmt.Sprintf("capture %q: name and path are both required", name))
		}
	}

	if len(issues) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(issues, "\n  - "))
	}
	return nil
}

// Descriptor builds the resolved request descriptor for the run. A request
// file, when present, provides the base descriptor and inline settings
// override it.
func (c Config) Descriptor() (request.Descriptor, error) {
	var d request.Descriptor
	if strings.TrimSpace(c.RequestFile) != "" {
		loaded, err := LoadRequestFile(c.RequestFile)
		if err != nil {
			return request.Descriptor{}, err
		}
		d = loaded
	}

	if strings.TrimSpace(c.Target) != "" {
		d.URL = strings.TrimSpace(c.Target)
	}
	if strings.TrimSpace(c.Method) != "" {
		d.Method = c.Method
	}
	if len(c.Headers) > 0 {
		if d.Headers == nil {
			d.Headers = map[string]string{}
		}
		// Request-level headers override any pre-merged ones.
		for key, value := range c.Headers {
			d.Headers[key] = value
		}
	}
	if c.Body != "" {
		d.Body = c.Body
		d.BodyFile = ""
	}
	if strings.TrimSpace(c.BodyFile) != "" {
		d.BodyFile = strings.TrimSpace(c.BodyFile)
		d.Body = ""
	}
	if len(c.QueryParams) > 0 {
		if d.QueryParams == nil {
			d.QueryParams = map[string]string{}
		}
		for key, value := range c.QueryParams {
			d.QueryParams[key] = value
		}
	}
	if len(c.PathParams) > 0 {
		if d.PathParams == nil {
			d.PathParams = map[string]string{}
		}
		for key, value := range c.PathParams {
			d.PathParams[key] = value
		}
	}
	if c.Timeout > 0 {
		d.Timeout = c.Timeout
	}
	d.FollowRedirects = c.FollowRedirects

	return d, nil
}

// Parameters returns the execution parameters for the run.
func (c Config) Parameters() engine.Parameters {
	return engine.Parameters{
		Threads:       c.Threads,
		Iterations:    c.Iterations,
		RatePerSecond: c.Rate,
	}
}

// CaptureSpecs returns capture specs in deterministic name order.
func (c Config) CaptureSpecs() []executor.CaptureSpec {
	if len(c.Captures) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.Captures))
	for name := range c.Captures {
		names = append(names, name)
	}
	sort.Strings(names)
	specs := make([]executor.CaptureSpec, 0, len(names))
	for _, name := range names {
		specs = append(specs, executor.CaptureSpec{Name: name, Path: c.Captures[name]})
	}
	return specs
}
