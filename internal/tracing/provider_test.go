package tracing

import (
	"strings"
	"testing"
)

func TestNewSamplerMapsRates(t *testing.T) {
	cases := []struct {
		rate float64
		want string
	}{
		{0, "AlwaysOffSampler"},
		{0.25, "TraceIDRatioBased"},
		{1.0, "AlwaysOnSampler"},
	}
	for _, tc := range cases {
		got := newSampler(tc.rate).Description()
		if !strings.Contains(got, tc.want) {
			t.Errorf("newSampler(%g) = %q, want sampler containing %q", tc.rate, got, tc.want)
		}
	}
}

func TestConfigEnabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	if (Config{}).Enabled() {
		t.Error("empty config must not enable tracing")
	}
	if !(Config{Endpoint: "localhost:4317"}).Enabled() {
		t.Error("an endpoint enables tracing")
	}
	if !(Config{Propagate: true}).Enabled() {
		t.Error("propagation alone enables initialization")
	}
}
