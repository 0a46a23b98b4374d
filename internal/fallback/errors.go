package fallback

import "errors"

// ErrEmpty is returned for a fallback document with no content.
var ErrEmpty = errors.New("document is empty")
