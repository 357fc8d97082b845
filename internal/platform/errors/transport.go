package errors

// Transport helpers for classifying outbound call failures (HTTP clients, dialers)

import (
	"context"
	stderrs "errors"
	"net"
)

// IsTimeout reports whether err is a deadline or transport timeout.
// Our own errors count when they carry ErrorCodeTimeout
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if IsCode(err, ErrorCodeTimeout) {
		return true
	}
	if stderrs.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	if stderrs.As(err, &ne) && ne.Timeout() {
		return true
	}
	return false
}

// FromTransport wraps a failed outbound call with a code derived from the cause.
// Timeouts map to ErrorCodeTimeout, caller cancellation keeps ErrorCodeUnknown and
// everything else is ErrorCodeUnavailable
func FromTransport(err error, msg string) error {
	if err == nil {
		return nil
	}
	switch {
	case IsTimeout(err):
		return Wrap(err, ErrorCodeTimeout, msg)
	case stderrs.Is(err, context.Canceled):
		return Wrap(err, ErrorCodeUnknown, msg)
	default:
		return Wrap(err, ErrorCodeUnavailable, msg)
	}
}
