// Package netretry detects transient network errors raised while a database
// server is still starting up.
package netretry

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"
)

// transientPatterns are error texts that indicate the server is not accepting
// connections yet. Drivers frequently flatten the underlying net error into a
// string, so text matching complements the typed checks below.
var transientPatterns = []string{
	"connection reset by peer", "connection refused",
	"i/o timeout", "unexpected EOF", "no such host",
	"unable to open tcp connection",
	"login timeout", "script upgrade mode",
	"broken pipe",
}

// IsRetryable returns true if err indicates that the server was unreachable or
// not yet ready, as opposed to a rejection by a running server.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	msg := err.Error()
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
