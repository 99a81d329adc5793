package result_test

import (
	"testing"

	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
)

func TestFriendlyErrorName(t *testing.T) {
	cases := []struct {
		typeName string
		want     string
	}{
		{"*url.Error", "Request URL error"},
		{"net.OpError", "Network connection error"},
		{"*net.DNSError", "DNS resolution error"},
		{"context.deadlineExceededError", "Context deadline exceeded"},
		{"mypkg.ConnectionResetError", "Connection Reset Error (mypkg)"},
		{"main.WeirdThing", "Weird Thing"},
		{"TLSHandshakeError", "TLS Handshake Error"},
		{"", "Unknown error"},
		{"  ", "Unknown error"},
	}
	for _, tc := range cases {
		if got := result.FriendlyErrorName(tc.typeName); got != tc.want {
			t.Errorf("FriendlyErrorName(%q) = %q, want %q", tc.typeName, got, tc.want)
		}
	}
}

func TestKindLabel(t *testing.T) {
	cases := []struct {
		kind result.ErrorKind
		want string
	}{
		{result.KindNetwork, "Network"},
		{result.KindTimeout, "Timeout"},
		{result.KindValidation, "Validation"},
		{result.KindAuthentication, "Authentication"},
		{result.KindServerError, "Server error"},
		{result.KindUnknown, "Unknown"},
		{result.ErrorKind("nonsense"), "Unknown"},
	}
	for _, tc := range cases {
		if got := result.KindLabel(tc.kind); got != tc.want {
			t.Errorf("KindLabel(%q) = %q, want %q", tc.kind, got, tc.want)
		}
	}
}

func TestExecutionErrorString(t *testing.T) {
	err := result.ExecutionError{Message: "dial tcp: connection refused", Kind: result.KindNetwork}
	if err.Error() != "network: dial tcp: connection refused" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestOutcomeTags(t *testing.T) {
	s := result.Success{CallIndex: 7, StatusCode: 503}
	if !s.OK() || s.Index() != 7 {
		t.Error("a completed exchange is a success regardless of status code")
	}
	f := result.Failure{Err: result.ExecutionError{CallIndex: 9}}
	if f.OK() || f.Index() != 9 {
		t.Error("failures must report OK() == false and carry the call index")
	}
}
