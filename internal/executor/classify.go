package executor

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"

	"github.com/zhangpjbo/HttpPal-sub003/internal/result"
)

// Classify maps a transport-level error to an error kind. Classification is
// best-effort: timeouts win over network errors, TLS and certificate problems
// count as authentication failures, and everything else is unknown.
func Classify(err error) result.ErrorKind {
	if err == nil {
		return result.KindUnknown
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return result.KindTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return result.KindTimeout
	}

	// A call aborted by cooperative cancellation is not a network fault.
	if errors.Is(err, context.Canceled) {
		return result.KindUnknown
	}

	if isAuthenticationError(err) {
		return result.KindAuthentication
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return result.KindNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return result.KindNetwork
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		// url.Error wraps the interesting cause; classify that instead.
		if kind := Classify(urlErr.Err); kind != result.KindUnknown {
			return kind
		}
		return result.KindNetwork
	}

	return result.KindUnknown
}

func isAuthenticationError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}
	return strings.Contains(err.Error(), "tls:")
}
