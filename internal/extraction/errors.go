package extraction

import "errors"

var (
	// ErrMissingCredentials means the upstream provider is not
	// configured. No run record is created.
	ErrMissingCredentials = errors.New("mls api credentials are not configured")

	// ErrLockHeld means another extraction run holds the lock. Expected
	// under normal concurrent scheduling; no run record is created or
	// mutated.
	ErrLockHeld = errors.New("extraction lock is held by another run")

	// errTooManyErrors aborts a run when the consecutive-error circuit
	// breaker trips
	errTooManyErrors = errors.New("too many consecutive record failures")
)
