package files

import "errors"

// ErrFallback wraps a failure to read the not-found document.
var ErrFallback = errors.New("fallback document")

// ErrPanic wraps a value recovered while handling a request.
var ErrPanic = errors.New("panic while handling request")
