package request

import "errors"

var ErrIncorrectRequestLine = errors.New("incorrect request line")
var ErrIncompleteRequest = errors.New("incomplete request")
var ErrHeadersTooLarge = errors.New("request headers too large")
var ErrInvalidContentLength = errors.New("invalid content length")
var ErrUnsupportedTransferEncoding = errors.New("unsupported transfer encoding")
var ErrMalformedChunk = errors.New("malformed chunk")
