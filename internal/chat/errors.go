package chat

// noModelError signals a chat request with no model key and no default
// configured.
type noModelError struct{ msg string }

func (e noModelError) Error() string { return e.msg }

// ErrNoModel constructs a noModelError.
func ErrNoModel(msg string) error { return noModelError{msg: msg} }

// IsNoModel reports whether err indicates that no model was available
// for the request.
func IsNoModel(err error) bool {
	_, ok := err.(noModelError)
	return ok
}

// badImageError signals an invalid image attachment. These are rejected
// before any upstream call is made.
type badImageError struct{ msg string }

func (e badImageError) Error() string { return e.msg }

// ErrBadImage constructs a badImageError.
func ErrBadImage(msg string) error { return badImageError{msg: msg} }

// IsBadImage reports whether err indicates a rejected image attachment.
func IsBadImage(err error) bool {
	_, ok := err.(badImageError)
	return ok
}

// upstreamError signals a failed call to the inference server.
type upstreamError struct{ msg string }

func (e upstreamError) Error() string { return e.msg }

// ErrUpstream constructs an upstreamError.
func ErrUpstream(msg string) error { return upstreamError{msg: msg} }

// IsUpstream reports whether err indicates an upstream chat failure.
func IsUpstream(err error) bool {
	_, ok := err.(upstreamError)
	return ok
}
