package middleware

import (
	"github.com/google/uuid"
	"github.com/shravanasati/filesrv/internal/request"
	"github.com/shravanasati/filesrv/internal/response"
	"github.com/shravanasati/filesrv/internal/server"
)

// RequestIDHeader carries the request id on responses.
const RequestIDHeader = "x-request-id"

// RequestID tags every response with a request id. A well formed UUID sent
// by the client is echoed back; anything else is replaced with a new one.
func RequestID(next server.Handler) server.Handler {
	return func(r *request.Request) response.Response {
		id := r.Headers.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		resp := next(r)
		resp.GetHeaders().Set(RequestIDHeader, id)
		return resp
	}
}
