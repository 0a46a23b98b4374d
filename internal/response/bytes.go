package response

import (
	"bytes"
	"strconv"
)

// BytesResponse is a response with an in-memory body of a given content type.
type BytesResponse struct {
	Response
}

// NewBytesResponse creates a response that sends body as-is.
func NewBytesResponse(contentType string, body []byte) Response {
	br := NewBaseResponse().
		WithHeader("content-type", contentType).
		WithHeader("content-length", strconv.Itoa(len(body))).
		WithBody(bytes.NewReader(body))

	return &BytesResponse{Response: br}
}
