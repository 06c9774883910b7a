package domain

import "errors"

// Sentinel errors shared across the assistant core.
var (
	// ErrNoModelAvailable is returned when every model in the fallback chain
	// failed to resolve. The application must not accept user actions after
	// seeing this.
	ErrNoModelAvailable = errors.New("no generation model available")

	// ErrStreamFailed is returned when a generation call cannot open its
	// stream or the stream terminates abnormally. It is fatal to the call,
	// never to the process.
	ErrStreamFailed = errors.New("generation stream failed")

	// ErrInvalidConfig is returned when a provider is constructed with
	// unusable configuration.
	ErrInvalidConfig = errors.New("invalid provider configuration")
)
