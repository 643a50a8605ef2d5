package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Failure taxonomy surfaced to callers. The repository absorbs Unreachable
// and Timeout on non-critical paths; ServerRejected and NotFound propagate.
var (
	ErrNotFound       = errors.New("not found")
	ErrUnreachable    = errors.New("remote unreachable")
	ErrTimeout        = errors.New("remote timeout")
	ErrServerRejected = errors.New("server rejected request")
)

// transportError maps a transport-level failure onto the taxonomy.
func transportError(op string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w", op, ErrTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w", op, ErrUnreachable)
}

// statusError maps a non-2xx response onto the taxonomy, keeping the server
// message for ServerRejected.
func statusError(op string, status int, message string) error {
	if status == 404 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if message != "" {
		return fmt.Errorf("%s: status %d: %s: %w", op, status, message, ErrServerRejected)
	}
	return fmt.Errorf("%s: status %d: %w", op, status, ErrServerRejected)
}
