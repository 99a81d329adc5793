package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "httppal",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Request flags
	flags.String("target", "", "Target URL to send requests to")
	flags.StringP("method", "m", "GET", "HTTP method to use")
	flags.StringSliceP("header", "H", nil, "Request header in key=value or 'key: value' form (repeatable)")
	flags.String("body", "", "Inline request body payload")
	flags.String("body-file", "", "Path to file containing the request body")
	flags.StringToString("query", nil, "Query parameter key=value pairs")
	flags.StringToString("path-param", nil, "Path parameter key=value pairs for {param} placeholders")
	flags.Duration("timeout", 30*time.Second, "Per-call timeout")
	flags.Bool("follow-redirects", false, "Follow HTTP redirects")
	flags.String("request", "", "Path to a YAML/JSON resolved request file")

	// Execution flags
	flags.IntP("threads", "c", 1, "Number of concurrent workers")
	flags.IntP("iterations", "n", 1, "Sequential calls per worker")
	flags.IntP("rate", "r", 0, "Shared requests-per-second pacing (0 means unpaced)")

	// Diagnostics flags
	flags.StringToString("capture", nil, "Capture name=jsonpath pairs extracted from success bodies")
	flags.Bool("json-output", false, "Emit JSON formatted output")
	flags.Bool("log-errors", false, "Log each failed call to stderr")
	flags.String("config", "", "Path to configuration file (JSON or YAML)")

	// Tracing flags
	flags.String("trace-endpoint", "", "OTLP endpoint for trace export")
	flags.String("trace-protocol", "grpc", "OTLP protocol: 'grpc' or 'http'")
	flags.String("trace-service-name", "", "Service name reported on spans")
	flags.Bool("trace-insecure", false, "Skip TLS verification for OTLP export")
	flags.Float64("trace-sample-rate", 1.0, "Trace sampling rate between 0.0 and 1.0")
	flags.Bool("trace-propagate", false, "Inject W3C trace context headers into calls")
}

// displayHelp prints the help message for a command.
func displayHelp(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Usage: %s\n\nFlags:\n", cmd.UseLine())
	fs := cmd.Flags()
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// applyFlagOverrides applies command-line flag values to the config, overriding
// values from the config file.
func applyFlagOverrides(cfg *Config, fs *pflag.FlagSet) error {
	if fs.Changed("target") {
		val, err := fs.GetString("target")
		if err != nil {
			return err
		}
		cfg.Target = strings.TrimSpace(val)
	}
	if fs.Changed("method") {
		val, err := fs.GetString("method")
		if err != nil {
			return err
		}
		cfg.Method = val
	}
	if fs.Changed("header") {
		entries, err := fs.GetStringSlice("header")
		if err != nil {
			return err
		}
		headers, err := parseHeaderEntries(entries)
		if err != nil {
			return err
		}
		if cfg.Headers == nil {
			cfg.Headers = map[string]string{}
		}
		for key, value := range headers {
			cfg.Headers[key] = value
		}
	}
	if fs.Changed("body") {
		val, err := fs.GetString("body")
		if err != nil {
			return err
		}
		cfg.Body = val
	}
	if fs.Changed("body-file") {
		val, err := fs.GetString("body-file")
		if err != nil {
			return err
		}
		cfg.BodyFile = strings.TrimSpace(val)
	}
	if fs.Changed("query") {
		val, err := fs.GetStringToString("query")
		if err != nil {
			return err
		}
		cfg.QueryParams = val
	}
	if fs.Changed("path-param") {
		val, err := fs.GetStringToString("path-param")
		if err != nil {
			return err
		}
		cfg.PathParams = val
	}
	if fs.Changed("timeout") {
		val, err := fs.GetDuration("timeout")
		if err != nil {
			return err
		}
		cfg.Timeout = val
	}
	if fs.Changed("follow-redirects") {
		val, err := fs.GetBool("follow-redirects")
		if err != nil {
			return err
		}
		cfg.FollowRedirects = val
	}
	if fs.Changed("request") {
		val, err := fs.GetString("request")
		if err != nil {
			return err
		}
		cfg.RequestFile = strings.TrimSpace(val)
	}
	if fs.Changed("threads") {
		val, err := fs.GetInt("threads")
		if err != nil {
			return err
		}
		cfg.Threads = val
	}
	if fs.Changed("iterations") {
		val, err := fs.GetInt("iterations")
		if err != nil {
			return err
		}
		cfg.Iterations = val
	}
	if fs.Changed("rate") {
		val, err := fs.GetInt("rate")
		if err != nil {
			return err
		}
		cfg.Rate = val
	}
	if fs.Changed("capture") {
		val, err := fs.GetStringToString("capture")
		if err != nil {
			return err
		}
		cfg.Captures = val
	}
	if fs.Changed("json-output") {
		val, err := fs.GetBool("json-output")
		if err != nil {
			return err
		}
		cfg.JSONOutput = val
	}
	if fs.Changed("log-errors") {
		val, err := fs.GetBool("log-errors")
		if err != nil {
			return err
		}
		cfg.LogErrors = val
	}
	if fs.Changed("trace-endpoint") {
		val, err := fs.GetString("trace-endpoint")
		if err != nil {
			return err
		}
		cfg.Tracing.Endpoint = strings.TrimSpace(val)
	}
	if fs.Changed("trace-protocol") {
		val, err := fs.GetString("trace-protocol")
		if err != nil {
			return err
		}
		cfg.Tracing.Protocol = val
	}
	if fs.Changed("trace-service-name") {
		val, err := fs.GetString("trace-service-name")
		if err != nil {
			return err
		}
		cfg.Tracing.ServiceName = val
	}
	if fs.Changed("trace-insecure") {
		val, err := fs.GetBool("trace-insecure")
		if err != nil {
			return err
		}
		cfg.Tracing.Insecure = val
	}
	if fs.Changed("trace-sample-rate") {
		val, err := fs.GetFloat64("trace-sample-rate")
		if err != nil {
			return err
		}
		cfg.Tracing.SampleRate = val
	}
	if fs.Changed("trace-propagate") {
		val, err := fs.GetBool("trace-propagate")
		if err != nil {
			return err
		}
		cfg.Tracing.Propagate = val
	}
	return nil
}

// parseHeaderEntries accepts "Key=value" and "Key: value" entry forms.
func parseHeaderEntries(entries []string) (map[string]string, error) {
	headers := make(map[string]string, len(entries))
	for _, entry := range entries {
		var key, value string
		if idx := strings.Index(entry, ":"); idx != -1 && (strings.Index(entry, "=") == -1 || idx < strings.Index(entry, "=")) {
			key, value = entry[:idx], entry[idx+1:]
		} else if idx := strings.Index(entry, "="); idx != -1 {
			key, value = entry[:idx], entry[idx+1:]
		} else {
			return nil, fmt.Errorf("invalid header %q: expected key=value or 'key: value'", entry)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid header %q: empty key", entry)
		}
		headers[key] = strings.TrimSpace(value)
	}
	return headers, nil
}
