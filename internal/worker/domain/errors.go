package domain

import "errors"

var (
	// ErrJobNotFound is returned when a dispatched job id matches no row.
	// The message is presumed stale and is skipped without escalation.
	ErrJobNotFound = errors.New("import job not found")

	// ErrInvalidLocator is returned when a stored payload_location cannot be
	// parsed into bucket and key.
	ErrInvalidLocator = errors.New("invalid payload locator")

	// ErrInvalidPayload is returned when the staged payload is not a valid
	// ticket batch.
	ErrInvalidPayload = errors.New("invalid batch payload")
)
