// Package files answers requests with the contents of files on disk.
package files

import (
	"fmt"
	"io"
	"log"

	"github.com/shravanasati/filesrv/internal/mimetype"
	"github.com/shravanasati/filesrv/internal/request"
	"github.com/shravanasati/filesrv/internal/resolve"
	"github.com/shravanasati/filesrv/internal/response"
)

// Responder serves files under a resolver's base directory. Misses are
// answered with the fallback document.
type Responder struct {
	resolver *resolve.Resolver
	fallback string
	fsys     FileSystem
	logger   *log.Logger
}

// Option configures a Responder.
type Option func(*Responder)

// WithFileSystem replaces the local disk.
func WithFileSystem(fsys FileSystem) Option {
	return func(rs *Responder) { rs.fsys = fsys }
}

// WithLogger sets where read misses are reported. nil discards them.
func WithLogger(l *log.Logger) Option {
	return func(rs *Responder) {
		if l == nil {
			l = log.New(io.Discard, "", 0)
		}
		rs.logger = l
	}
}

// NewResponder returns a Responder that resolves paths with resolver and
// answers misses with the document at fallback.
func NewResponder(resolver *resolve.Resolver, fallback string, opts ...Option) *Responder {
	rs := &Responder{
		resolver: resolver,
		fallback: fallback,
		fsys:     OSFileSystem{},
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// Handle answers r with exactly one of:
//   - 200 "Success", the file's bytes, content type from its extension
//   - 404 "Not Found", text/html, the fallback document
//   - a *response.FatalResponse for anything else, including an unreadable
//     fallback document and panics
func (rs *Responder) Handle(r *request.Request) (resp response.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			resp = response.NewFatalResponse(fmt.Errorf("%w: %v", ErrPanic, rec))
		}
	}()

	resp, err := rs.serve(r)
	if err != nil {
		return response.NewFatalResponse(err)
	}
	return resp
}

func (rs *Responder) serve(r *request.Request) (response.Response, error) {
	reqPath, err := r.Path()
	if err != nil {
		rs.logger.Printf("[ERROR]: getFile - %v", err)
		return rs.notFound()
	}

	resolved, err := rs.resolver.Resolve(reqPath)
	if err != nil {
		rs.logger.Printf("[ERROR]: getFile - %v", err)
		return rs.notFound()
	}

	body, ok := rs.getFile(resolved)
	if !ok {
		return rs.notFound()
	}

	return response.NewBytesResponse(mimetype.ForPath(resolved), body).
		WithReason(response.ReasonSuccess), nil
}

// getFile reads the file at p. Every failure, whatever its cause, counts as
// a miss.
func (rs *Responder) getFile(p string) ([]byte, bool) {
	body, err := rs.fsys.ReadFile(p)
	if err != nil {
		rs.logger.Printf("[ERROR]: getFile - %v", err)
		return nil, false
	}
	return body, true
}

func (rs *Responder) notFound() (response.Response, error) {
	body, err := rs.fsys.ReadFile(rs.fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFallback, err)
	}

	return response.NewHTMLResponse(body).
		WithStatusCode(response.StatusNotFound).
		WithReason(response.ReasonNotFound), nil
}
