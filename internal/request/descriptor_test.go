package request_test

import (
	"strings"
	"testing"
	"time"

	"github.com/zhangpjbo/HttpPal-sub003/internal/request"
)

func TestValidateRejectsBadDescriptors(t *testing.T) {
	cases := []struct {
		name string
		d    request.Descriptor
		want string
	}{
		{
			name: "empty URL",
			d:    request.Descriptor{},
			want: "target URL is required",
		},
		{
			name: "unsupported scheme",
			d:    request.Descriptor{URL: "ftp://example.com/file"},
			want: "unsupported URL scheme",
		},
		{
			name: "unresolved placeholder",
			d:    request.Descriptor{URL: "https://example.com/users/{id}"},
			want: "unresolved placeholder {id}",
		},
		{
			name: "header key with CRLF",
			d: request.Descriptor{
				URL:     "https://example.com",
				Headers: map[string]string{"X-Bad\r\nHeader": "v"},
			},
			want: "invalid header key",
		},
		{
			name: "header value with CRLF",
			d: request.Descriptor{
				URL:     "https://example.com",
				Headers: map[string]string{"X-Key": "v\r\nInjected: yes"},
			},
			want: "invalid header value",
		},
		{
			name: "body and body file",
			d: request.Descriptor{
				URL:      "https://example.com",
				Body:     "{}",
				BodyFile: "payload.json",
			},
			want: "cannot both be provided",
		},
		{
			name: "negative timeout",
			d:    request.Descriptor{URL: "https://example.com", Timeout: -time.Second},
			want: "timeout must be >= 0",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.d.Validate()
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestValidateAcceptsResolvedDescriptor(t *testing.T) {
	d := request.Descriptor{
		Method:  "POST",
		URL:     "https://api.example.com/v1/orders",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    `{"sku":"a-1"}`,
		Timeout: 5 * time.Second,
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestExpandedSubstitutesParams(t *testing.T) {
	d := request.Descriptor{
		URL:         "https://example.com/users/{id}/posts",
		PathParams:  map[string]string{"id": "42"},
		QueryParams: map[string]string{"page": "2"},
	}
	expanded, err := d.Expanded()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expanded.URL != "https://example.com/users/42/posts?page=2" {
		t.Fatalf("unexpected expanded URL %q", expanded.URL)
	}
	if err := expanded.Validate(); err != nil {
		t.Fatalf("expanded descriptor should validate, got %v", err)
	}
	if d.URL != "https://example.com/users/{id}/posts" {
		t.Fatalf("original descriptor mutated: %q", d.URL)
	}
}

func TestResolvedMethodDefaultsToGet(t *testing.T) {
	d := request.Descriptor{URL: "https://example.com"}
	if got := d.ResolvedMethod(); got != "GET" {
		t.Fatalf("expected GET, got %q", got)
	}
	d.Method = "post"
	if got := d.ResolvedMethod(); got != "POST" {
		t.Fatalf("expected POST, got %q", got)
	}
}
