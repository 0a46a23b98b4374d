// Package resolve maps request paths to files under a base directory.
package resolve

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultDocument is served for the root path.
const DefaultDocument = "index.html"

// Resolver turns request paths into filesystem paths under a fixed base
// directory.
type Resolver struct {
	base string
	// real is base with symlinks evaluated, or base itself when it does not
	// exist yet.
	real string
}

// New returns a Resolver rooted at base, made absolute.
func New(base string) (*Resolver, error) {
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolve: base directory %q: %w", base, err)
	}
	evaluated, err := filepath.EvalSymlinks(abs)
	if err != nil {
		evaluated = abs
	}
	return &Resolver{base: abs, real: evaluated}, nil
}

// Base returns the absolute base directory.
func (r *Resolver) Base() string {
	return r.base
}

// Resolve returns the filesystem path for the decoded request path p.
// "/" becomes "/index.html"; every other path is used as is, including a
// trailing slash. The result is joined onto the base directory and must stay
// under it, otherwise ErrOutsideBase is returned along with the joined path.
// Symlinks are followed for the check, so a link pointing outside the base
// directory is rejected too. A path that cannot be evaluated is returned
// unchecked; reading it fails the same way.
func (r *Resolver) Resolve(p string) (string, error) {
	if p == "/" {
		p += DefaultDocument
	}

	resolved := filepath.Join(r.base, filepath.FromSlash(p))
	if !contains(r.base, resolved) {
		return resolved, fmt.Errorf("%w: %s", ErrOutsideBase, p)
	}

	target, err := filepath.EvalSymlinks(resolved)
	if err != nil {
		return resolved, nil
	}
	if !contains(r.real, target) {
		return resolved, fmt.Errorf("%w: %s links to %s", ErrOutsideBase, p, target)
	}
	return resolved, nil
}

func contains(base, p string) bool {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
