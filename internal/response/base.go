package response

import (
	"io"

	"github.com/shravanasati/filesrv/internal/headers"
)

// BaseResponse struct for fluent method chaining.
type BaseResponse struct {
	StatusCode StatusCode
	Reason     string
	Headers    *headers.Headers
	Body       io.Reader
}

// NewBaseResponse returns an empty 200 response. The server only ever
// answers one request per connection, so connection: close is always set.
func NewBaseResponse() Response {
	hs := headers.NewHeaders()
	hs.Add("connection", "close")
	return &BaseResponse{
		Headers:    hs,
		StatusCode: StatusOK,
	}
}

func (r *BaseResponse) GetStatusCode() StatusCode {
	return r.StatusCode
}

func (r *BaseResponse) GetReason() string {
	if r.Reason != "" {
		return r.Reason
	}
	return GetStatusReason(r.StatusCode)
}

func (r *BaseResponse) GetHeaders() *headers.Headers {
	return r.Headers
}

func (r *BaseResponse) GetBody() io.Reader {
	return r.Body
}

func (r *BaseResponse) WithStatusCode(code StatusCode) Response {
	r.StatusCode = code
	return r
}

func (r *BaseResponse) WithReason(reason string) Response {
	r.Reason = reason
	return r
}

func (r *BaseResponse) WithHeader(key, value string) Response {
	r.Headers.Add(key, value)
	return r
}

func (r *BaseResponse) WithHeaders(headers map[string]string) Response {
	for key, value := range headers {
		r.Headers.Add(key, value)
	}
	return r
}

func (r *BaseResponse) WithBody(body io.Reader) Response {
	r.Body = body
	return r
}

func (r *BaseResponse) Write(w io.Writer) error {
	rw := NewResponseWriter(w)
	if err := rw.WriteStatusLine(r.StatusCode, r.GetReason()); err != nil {
		return err
	}
	if err := rw.WriteHeaders(r.Headers); err != nil {
		return err
	}
	if err := rw.WriteBody(r.Body); err != nil {
		return err
	}
	return rw.End()
}
