package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadAppliesFlagOverrides(t *testing.T) {
	loader := NewLoader()
	cfg, err := loader.Load([]string{
		"--target", "https://api.example.com/users/{id}",
		"-m", "post",
		"-H", "Authorization=Bearer abc",
		"-H", "Content-Type: application/json",
		"--path-param", "id=42",
		"--query", "page=2",
		"-c", "8",
		"-n", "50",
		"-r", "100",
		"--timeout", "5s",
		"--capture", "token=$.auth.token",
		"--json-output",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Target != "https://api.example.com/users/{id}" {
		t.Errorf("unexpected target %q", cfg.Target)
	}
	if cfg.Method != "POST" {
		t.Errorf("method should normalize to upper case, got %q", cfg.Method)
	}
	if cfg.Headers["Authorization"] != "Bearer abc" {
		t.Errorf("unexpected headers %v", cfg.Headers)
	}
	if cfg.Headers["Content-Type"] != "application/json" {
		t.Errorf("colon header form should parse, got %v", cfg.Headers)
	}
	if cfg.PathParams["id"] != "42" || cfg.QueryParams["page"] != "2" {
		t.Errorf("unexpected params: path=%v query=%v", cfg.PathParams, cfg.QueryParams)
	}
	if cfg.Threads != 8 || cfg.Iterations != 50 || cfg.Rate != 100 {
		t.Errorf("unexpected execution settings: %d/%d/%d", cfg.Threads, cfg.Iterations, cfg.Rate)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("unexpected timeout %v", cfg.Timeout)
	}
	if !cfg.JSONOutput {
		t.Error("expected json output enabled")
	}

	specs := cfg.CaptureSpecs()
	if len(specs) != 1 || specs[0].Name != "token" || specs[0].Path != "$.auth.token" {
		t.Errorf("unexpected capture specs %v", specs)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := NewLoader().Load([]string{"--target", "http://localhost:8080"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Method != "GET" || cfg.Threads != 1 || cfg.Iterations != 1 {
		t.Errorf("unexpected defaults: %q %d %d", cfg.Method, cfg.Threads, cfg.Iterations)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("unexpected default timeout %v", cfg.Timeout)
	}
	if cfg.Tracing.Protocol != "grpc" || cfg.Tracing.SampleRate != 1.0 {
		t.Errorf("unexpected tracing defaults: %+v", cfg.Tracing)
	}
	if cfg.Tracing.Enabled() {
		t.Error("tracing must stay disabled without an endpoint")
	}
}

func TestLoadNoArgsRequestsHelp(t *testing.T) {
	_, err := NewLoader().Load(nil)
	if !errors.Is(err, ErrHelpRequested) {
		t.Fatalf("expected ErrHelpRequested, got %v", err)
	}
}

func TestLoadRejectsInvalidConfiguration(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"missing target", []string{"-c", "4"}, "target is required"},
		{"zero threads", []string{"--target", "http://x", "-c", "0"}, "threads must be >= 1"},
		{"zero iterations", []string{"--target", "http://x", "-n", "0"}, "iterations must be >= 1"},
		{"body conflict", []string{"--target", "http://x", "--body", "a", "--body-file", "b.json"}, "cannot both be provided"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Load(tc.args)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadConfigFileWithFlagOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := "target: https://cfg.example.com\nmethod: PUT\nthreads: 4\niterations: 10\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewLoader().Load([]string{"--config", path, "-c", "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Target != "https://cfg.example.com" || cfg.Method != "PUT" {
		t.Errorf("config file values not applied: %q %q", cfg.Target, cfg.Method)
	}
	if cfg.Threads != 2 {
		t.Errorf("flag must override config file, got %d threads", cfg.Threads)
	}
	if cfg.Iterations != 10 {
		t.Errorf("config file iterations lost, got %d", cfg.Iterations)
	}
}

func TestParseHeaderEntries(t *testing.T) {
	headers, err := parseHeaderEntries([]string{"X-Token=abc", "Accept: text/plain"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if headers["X-Token"] != "abc" || headers["Accept"] != "text/plain" {
		t.Errorf("unexpected headers %v", headers)
	}

	if _, err := parseHeaderEntries([]string{"no-separator"}); err == nil {
		t.Error("expected error for entry without separator")
	}
	if _, err := parseHeaderEntries([]string{"=value"}); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestDescriptorMergesRequestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.yaml")
	content := `method: POST
url: https://file.example.com/items
headers:
  X-Source: file
body: '{"from":"file"}'
timeout: 10s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Config{
		RequestFile: path,
		Headers:     map[string]string{"X-Extra": "inline"},
		Body:        `{"from":"inline"}`,
		Timeout:     3 * time.Second,
	}
	d, err := cfg.Descriptor()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.URL != "https://file.example.com/items" || d.Method != "POST" {
		t.Errorf("request file values lost: %q %q", d.URL, d.Method)
	}
	if d.Headers["X-Source"] != "file" || d.Headers["X-Extra"] != "inline" {
		t.Errorf("headers did not merge: %v", d.Headers)
	}
	if d.Body != `{"from":"inline"}` {
		t.Errorf("inline body must override the file body, got %q", d.Body)
	}
	if d.Timeout != 3*time.Second {
		t.Errorf("inline timeout must win, got %v", d.Timeout)
	}
}

func TestLoadRequestFileRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.yaml")
	if err := os.WriteFile(path, []byte("url: http://x\nbogus_field: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRequestFile(path); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoadRequestFileParsesTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "request.yaml")
	if err := os.WriteFile(path, []byte("url: http://x\ntimeout: 1500ms\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadRequestFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Timeout != 1500*time.Millisecond {
		t.Errorf("unexpected timeout %v", d.Timeout)
	}
}
