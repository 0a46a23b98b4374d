package server

import (
	"bufio"
	"errors"
	"io"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shravanasati/filesrv/internal/request"
	"github.com/shravanasati/filesrv/internal/response"
)

// dateFormat is the IMF-fixdate format of the date header.
const dateFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// maxDiscard caps how much of an unwanted request body is drained before the
// response goes out.
const maxDiscard = 1 << 20

// lingerTimeout bounds how long a half-closed connection is read from before
// it is closed.
const lingerTimeout = 500 * time.Millisecond

// Server answers one request per connection with its handler.
type Server struct {
	opts     ServerOpts
	listener net.Listener
	closed   atomic.Bool
	handler  Handler

	fatal chan error
	done  chan struct{}
	err   error
	conns sync.WaitGroup
}

// Close stops accepting connections. In-flight requests are left to finish.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.listener.Close()
}

// Addr returns the address the server is listening on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Fatal delivers the cause of the first fatal response the server wrote.
func (s *Server) Fatal() <-chan error {
	return s.fatal
}

// Done is closed once the accept loop has exited.
func (s *Server) Done() <-chan struct{} {
	return s.done
}

// Wait blocks until the accept loop exits and all connections are handled.
// It returns the accept error, if the loop did not stop because of Close.
func (s *Server) Wait() error {
	<-s.done
	s.conns.Wait()
	return s.err
}

func (s *Server) listen() {
	defer close(s.done)

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.closed.Load() {
				s.opts.Logger.Println("unable to accept connection: " + err.Error())
				s.err = err
			}
			return
		}

		if s.opts.ReadTimeout != 0 {
			conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
		}
		if s.opts.WriteTimeout != 0 {
			conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
		}

		s.conns.Add(1)
		go func() {
			defer s.conns.Done()
			s.handle(conn)
		}()
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.closeConn(conn)

	req, err := request.RequestFromReader(bufio.NewReader(conn))
	if err != nil {
		// the peer may already be gone, nothing to report
		s.write(conn, rejection(err))
		return
	}

	if req.Headers.Get("content-length") != "" && req.Headers.Get("transfer-encoding") != "" {
		// requests containing both content length and transfer encoding
		// headers MAY be rejected by the server as per the RFC
		// https://datatracker.ietf.org/doc/html/rfc9112#section-6.1-15
		s.write(conn, rejection(nil))
		return
	}

	body, err := req.Body()
	if err != nil {
		s.write(conn, rejection(err))
		return
	}
	// the body is never used, but an unread body makes some clients miss
	// the response
	io.Copy(io.Discard, io.LimitReader(body, maxDiscard))

	resp := s.dispatch(req)
	if err := s.write(conn, resp); err != nil {
		s.opts.Logger.Println("unable to write response to connection:", err)
	}

	if fr, ok := response.AsFatal(resp); ok {
		s.reportFatal(fr.Cause())
	}
}

// dispatch runs the handler, turning a panic into the Recovery response.
func (s *Server) dispatch(req *request.Request) (resp response.Response) {
	defer func() {
		if r := recover(); r != nil {
			resp = s.opts.Recovery(r)
		}
	}()
	return s.handler(req)
}

type closeWriter interface {
	CloseWrite() error
}

// closeConn half-closes conn and reads off whatever the peer still sends,
// so that unread request bytes do not make the close a reset that discards
// the response.
func (s *Server) closeConn(conn net.Conn) {
	if cw, ok := conn.(closeWriter); ok && cw.CloseWrite() == nil {
		conn.SetReadDeadline(time.Now().Add(lingerTimeout))
		io.Copy(io.Discard, conn)
	}
	if err := conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.opts.Logger.Println("unable to close connection", err)
	}
}

func (s *Server) write(conn net.Conn, resp response.Response) error {
	resp.GetHeaders().Set("date", time.Now().UTC().Format(dateFormat))
	resp.GetHeaders().Set("connection", "close")
	return resp.Write(bufio.NewWriter(conn))
}

func (s *Server) reportFatal(cause error) {
	s.opts.Logger.Printf("[ERROR]: server - %v", cause)

	select {
	case s.fatal <- cause:
	default:
		// someone was already told
	}

	if s.opts.FatalPolicy == FatalShutdown {
		s.Close()
	}
}

// rejection picks the response for a request that could not be parsed.
func rejection(err error) response.Response {
	status := response.StatusBadRequest
	var netErr net.Error
	switch {
	case errors.Is(err, request.ErrHeadersTooLarge):
		status = response.StatusRequestHeaderFieldsTooLarge
	case errors.Is(err, request.ErrUnsupportedTransferEncoding):
		status = response.StatusNotImplemented
	case errors.As(err, &netErr) && netErr.Timeout():
		status = response.StatusRequestTimeout
	}
	return response.NewTextResponse(response.GetStatusReason(status)).WithStatusCode(status)
}

func newServer(opts ServerOpts, handler Handler) *Server {
	if opts.Address == "" {
		opts.Address = defaultAddress
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Recovery == nil {
		opts.Recovery = defaultRecovery(opts.Logger)
	}
	return &Server{
		opts:    opts,
		handler: handler,
		fatal:   make(chan error, 1),
		done:    make(chan struct{}),
	}
}

// Serve binds opts.Address and starts answering requests with handler in the
// background. A bind failure is returned immediately.
func Serve(opts ServerOpts, handler Handler) (*Server, error) {
	s := newServer(opts, handler)

	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return nil, err
	}
	s.listener = listener

	go s.listen()
	return s, nil
}
