package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrCourtNotFound = errors.New("court not found")

	ErrCoachNotFound = errors.New("coach not found")

	// ErrLeaseHeld is returned when another holder owns the lease key.
	ErrLeaseHeld = errors.New("lease already held")

	// ErrLeaseNotOwned is returned when a release presents the wrong owner token
	// or the lease no longer exists.
	ErrLeaseNotOwned = errors.New("lease not held by caller")
)
