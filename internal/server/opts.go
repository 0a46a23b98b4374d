package server

import (
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"github.com/shravanasati/filesrv/internal/response"
)

// FatalPolicy decides what the server does after answering a request with a
// fatal response.
type FatalPolicy int

const (
	// FatalShutdown stops accepting connections.
	FatalShutdown FatalPolicy = iota
	// FatalIsolate keeps serving; only the failing request is affected.
	FatalIsolate
)

func (p FatalPolicy) String() string {
	switch p {
	case FatalShutdown:
		return "shutdown"
	case FatalIsolate:
		return "isolate"
	default:
		return fmt.Sprintf("FatalPolicy(%d)", int(p))
	}
}

type ServerOpts struct {
	// The address for the server to listen on.
	Address string

	// Recovery takes the return value of the recover() call and returns the
	// response written to the connection. The default produces a fatal
	// response.
	Recovery func(any) response.Response

	// Deadlines for socket reads and writes. Zero means none.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// FatalPolicy applies once a fatal response has been written.
	FatalPolicy FatalPolicy

	// Logger receives server diagnostics. Defaults to log.Default().
	Logger *log.Logger
}

const defaultAddress = ":4800"

// defaultRecovery reports the panic and its stack on l.
func defaultRecovery(l *log.Logger) func(any) response.Response {
	return func(r any) response.Response {
		l.Printf("recovered from panic: %v\n%s", r, debug.Stack())
		return response.NewFatalResponse(fmt.Errorf("panic: %v", r))
	}
}
