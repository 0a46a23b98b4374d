package server

import (
	"github.com/shravanasati/filesrv/internal/request"
	"github.com/shravanasati/filesrv/internal/response"
)

// Handler takes a request and returns a response.
type Handler func(*request.Request) response.Response

// Middleware wraps a Handler.
type Middleware func(Handler) Handler

// Chain wraps h so that the first middleware is the outermost.
func Chain(h Handler, middlewares ...Middleware) Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
