package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Daemon API errors
	ErrAPIRequest        = fmt.Errorf("API request failed")
	ErrDaemonUnavailable = fmt.Errorf("daemon unavailable")
	ErrCommandRejected   = fmt.Errorf("command rejected by daemon")
	ErrMalformedSnapshot = fmt.Errorf("malformed snapshot")

	// Search errors
	ErrSearchNotFound = fmt.Errorf("search not found")
	ErrResultNotFound = fmt.Errorf("search result not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
