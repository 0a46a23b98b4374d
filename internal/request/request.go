package request

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/shravanasati/filesrv/internal/headers"
)

// maxHeaderBytes bounds the request line plus all header lines.
const maxHeaderBytes = 1 << 20

var registeredNurse = []byte("\r\n")

// The method is any RFC 9110 token; routing never looks at it.
var requestLineRegex = regexp.MustCompile(`^([a-zA-Z0-9!#$%&'*+\-.^_\x60|~]+) ([^\s]*) HTTP/1\.1$`)

type RequestLine struct {
	Method      string
	Target      string
	HTTPVersion string
}

// Request is a parsed HTTP/1.1 request. The body is left unread on the
// underlying connection until Body is called.
type Request struct {
	RequestLine
	Headers headers.Headers

	reader *bufio.Reader
	body   io.ReadCloser
}

func parseRequestLine(reqLine []byte) (*RequestLine, error) {
	matches := requestLineRegex.FindSubmatch(reqLine)
	if len(matches) != 3 {
		return nil, ErrIncorrectRequestLine
	}

	return &RequestLine{
		Method:      string(matches[1]),
		Target:      string(matches[2]),
		HTTPVersion: "1.1",
	}, nil
}

// readLine reads one CRLF terminated line and returns it without the CRLF.
func readLine(br *bufio.Reader, budget *int) ([]byte, error) {
	var line []byte
	for {
		chunk, err := br.ReadSlice('\n')
		line = append(line, chunk...)
		*budget -= len(chunk)
		if *budget < 0 {
			return nil, ErrHeadersTooLarge
		}
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil, ErrIncompleteRequest
		}
		return nil, err
	}

	if !bytes.HasSuffix(line, registeredNurse) {
		// bare LF
		return nil, ErrIncompleteRequest
	}
	return line[:len(line)-2], nil
}

// RequestFromReader reads a request line and headers from reader. It stops
// right after the empty line ending the header section.
func RequestFromReader(reader io.Reader) (*Request, error) {
	br, ok := reader.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(reader)
	}
	budget := maxHeaderBytes

	line, err := readLine(br, &budget)
	if err != nil {
		return nil, err
	}
	requestLine, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}

	hs := headers.NewHeaders()
	for {
		line, err := readLine(br, &budget)
		if err != nil {
			return nil, err
		}
		if len(line) == 0 {
			// double CRLF, headers over
			break
		}
		if err := hs.ParseFieldLine(line); err != nil {
			return nil, err
		}
	}

	return &Request{RequestLine: *requestLine, Headers: *hs, reader: br}, nil
}

// Path returns the percent-decoded path component of the request target.
// Query and fragment are discarded. An empty path is reported as "/".
func (r *Request) Path() (string, error) {
	target, _, _ := strings.Cut(r.Target, "#")
	u, err := url.Parse(target)
	if err != nil {
		return "", err
	}
	if u.Path == "" {
		return "/", nil
	}
	return u.Path, nil
}

// TransferEncodings returns the transfer codings applied to the body, in
// order. The last coding must be chunked.
// https://datatracker.ietf.org/doc/html/rfc9112#section-6.3-2.4.3
func (r *Request) TransferEncodings() ([]string, error) {
	te := r.Headers.Get("transfer-encoding")
	if te == "" {
		return nil, nil
	}

	var codings []string
	for c := range strings.SplitSeq(te, ",") {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			codings = append(codings, c)
		}
	}
	if len(codings) == 0 || codings[len(codings)-1] != "chunked" {
		return nil, ErrUnsupportedTransferEncoding
	}
	return codings, nil
}

// Body returns a reader over the request body. Closing it discards whatever
// was not read.
func (r *Request) Body() (io.ReadCloser, error) {
	if r.body != nil {
		return r.body, nil
	}

	codings, err := r.TransferEncodings()
	if err != nil {
		return nil, err
	}

	switch {
	case len(codings) > 0:
		r.body = newChunkedReader(r.reader)
	case r.Headers.Get("content-length") != "":
		n, err := strconv.ParseInt(r.Headers.Get("content-length"), 10, 64)
		if err != nil || n < 0 {
			return nil, ErrInvalidContentLength
		}
		r.body = newBodyReader(r.reader, n)
	default:
		r.body = io.NopCloser(bytes.NewReader(nil))
	}
	return r.body, nil
}
