package response

import (
	"fmt"
	"io"

	"github.com/shravanasati/filesrv/internal/headers"
)

// Response is what a handler hands back to the server. The With* methods
// mutate the receiver and return it for chaining.
type Response interface {
	GetStatusCode() StatusCode
	GetReason() string
	GetHeaders() *headers.Headers
	GetBody() io.Reader

	WithStatusCode(StatusCode) Response
	// WithReason overrides the reason phrase of the status line.
	WithReason(string) Response
	WithHeader(key, value string) Response
	WithHeaders(map[string]string) Response
	WithBody(io.Reader) Response

	Write(io.Writer) error
}

// ResponseWriter writes a response in order: status line, headers, body, end.
// Each step can happen only once.
type ResponseWriter struct {
	conn  io.Writer
	state responseState
}

func NewResponseWriter(conn io.Writer) *ResponseWriter {
	return &ResponseWriter{conn: conn, state: newResponseState()}
}

func (rw *ResponseWriter) WriteStatusLine(statusCode StatusCode, reason string) error {
	if rw.state != stateStatusLine {
		return ErrStatusLineAlreadyWritten
	}
	if reason == "" {
		reason = GetStatusReason(statusCode)
	}
	_, err := fmt.Fprintf(rw.conn, "HTTP/1.1 %d %s\r\n", statusCode, reason)
	if err != nil {
		return err
	}

	rw.state = rw.state.advance()
	return nil
}

func (rw *ResponseWriter) WriteHeaders(h *headers.Headers) error {
	if rw.state != stateHeaders {
		return ErrHeadersAlreadyWritten
	}
	for k, v := range h.All() {
		if _, err := fmt.Fprintf(rw.conn, "%s: %s\r\n", k, v); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(rw.conn, "\r\n"); err != nil {
		return err
	}
	rw.state = rw.state.advance()
	return nil
}

// WriteBody copies b to the connection. A nil body writes nothing.
func (rw *ResponseWriter) WriteBody(b io.Reader) error {
	if rw.state != stateBody {
		return ErrNoBodyState
	}
	if b != nil {
		if _, err := io.Copy(rw.conn, b); err != nil {
			return err
		}
	}
	rw.state = rw.state.advance()
	return nil
}

// End marks the response as complete. The body must have been written.
func (rw *ResponseWriter) End() error {
	if rw.state != stateDone {
		return ErrBodyNotWritten
	}
	if f, ok := rw.conn.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
