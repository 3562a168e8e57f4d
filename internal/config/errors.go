package config

import "errors"

// Configuration errors. Validate and the profile loader return these so
// callers can match them with errors.Is.
var (
	// ErrInvalidPort is returned when PORT is not a TCP port number.
	ErrInvalidPort = errors.New("invalid port: must be 1-65535")

	// ErrInvalidWorkerCount is returned when WORKER_COUNT is not positive.
	ErrInvalidWorkerCount = errors.New("invalid worker count: must be positive")

	// ErrInvalidQueueSize is returned when MAX_QUEUE_SIZE is not positive.
	ErrInvalidQueueSize = errors.New("invalid queue size: must be positive")

	// ErrInvalidSizeLimit is returned when an upload or text limit is not positive.
	ErrInvalidSizeLimit = errors.New("invalid size limit: must be positive")

	// ErrInvalidLogFormat is returned when LOG_FORMAT is neither json nor text.
	ErrInvalidLogFormat = errors.New("invalid log format: must be json or text")

	// ErrInvalidLogLevel is returned when LOG_LEVEL is not a known level.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn or error")

	// ErrProfilesNotFound is returned when a profiles file does not exist.
	ErrProfilesNotFound = errors.New("profiles file not found")

	// ErrUnknownProfile is returned when a named profile is not defined.
	ErrUnknownProfile = errors.New("unknown profile")

	// ErrInvalidProfile is returned when a profiles file fails validation.
	ErrInvalidProfile = errors.New("invalid profile")
)
