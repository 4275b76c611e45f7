package models

// serverUnavailableError signals that the lifecycle API could not be
// reached, so the HTTP layer can return 503 Service Unavailable.
type serverUnavailableError struct{ msg string }

func (e serverUnavailableError) Error() string { return e.msg }

// ErrServerUnavailable constructs a serverUnavailableError.
func ErrServerUnavailable(msg string) error { return serverUnavailableError{msg: msg} }

// IsServerUnavailable reports whether err indicates an unreachable
// inference server.
func IsServerUnavailable(err error) bool {
	_, ok := err.(serverUnavailableError)
	return ok
}

// loadFailedError signals that the server rejected a load or unload for
// a specific model key.
type loadFailedError struct{ msg string }

func (e loadFailedError) Error() string { return e.msg }

// ErrLoadFailed constructs a loadFailedError.
func ErrLoadFailed(msg string) error { return loadFailedError{msg: msg} }

// IsLoadFailed reports whether err indicates a per-model load/unload
// failure rather than a connectivity problem.
func IsLoadFailed(err error) bool {
	_, ok := err.(loadFailedError)
	return ok
}
