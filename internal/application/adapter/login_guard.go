package adapter

import "context"

// LoginGuard counts consecutive failed login attempts per account. The
// counter expires on its own after the lockout window; the authoritative
// lock lives on the user record.
type LoginGuard interface {
	// RecordFailure increments the failure count for the key and returns
	// the new count.
	RecordFailure(ctx context.Context, key string) (int, error)

	// Reset clears the failure count for the key.
	Reset(ctx context.Context, key string) error

	// Failures returns the current failure count for the key.
	Failures(ctx context.Context, key string) (int, error)
}
