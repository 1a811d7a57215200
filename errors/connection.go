package errors

import (
	"errors"
	"net"
	"syscall"
)

// connectionErrnos are the socket-level failures that indicate the remote
// side was never reached or the connection was torn down mid-flight.
var connectionErrnos = []syscall.Errno{
	syscall.ECONNREFUSED,
	syscall.ECONNRESET,
	syscall.ECONNABORTED,
	syscall.EPIPE,
	syscall.EHOSTUNREACH,
	syscall.ENETUNREACH,
}

// IsConnectionError reports whether err is a connection-level transport
// failure: name resolution, dialing, or a connection that was refused,
// reset, or otherwise lost. These are the failures worth retrying blindly,
// because they say nothing about the request itself.
//
// Timeouts are deliberately NOT classified as connection errors: a timeout
// can mean the server accepted the request and is still working on it, so
// blind re-submission is not safe for non-idempotent calls.
//
// Wrapping errors such as *url.Error unwrap transparently through
// errors.As and errors.Is.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	if errors.Is(err, net.ErrClosed) {
		return true
	}

	for _, errno := range connectionErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}

	return false
}
