package resolve

import "errors"

// ErrOutsideBase is returned for paths whose ".." segments climb out of the
// base directory.
var ErrOutsideBase = errors.New("path escapes base directory")
