package request

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
)

// chunkedReader decodes a chunked message body as it is read. Trailer
// fields are consumed and dropped.
type chunkedReader struct {
	reader    *bufio.Reader
	remaining int64
	done      bool
	err       error
}

func newChunkedReader(r *bufio.Reader) *chunkedReader {
	return &chunkedReader{reader: r}
}

func parseHexadecimal(hex string) (int64, error) {
	return strconv.ParseInt(hex, 16, 64)
}

func (cr *chunkedReader) nextChunk() error {
	budget := maxHeaderBytes
	line, err := readLine(cr.reader, &budget)
	if err != nil {
		return err
	}

	// chunk extensions are ignored
	size, _, _ := bytes.Cut(line, []byte(";"))
	n, err := parseHexadecimal(string(bytes.TrimSpace(size)))
	if err != nil || n < 0 {
		return ErrMalformedChunk
	}
	if n > 0 {
		cr.remaining = n
		return nil
	}

	// last chunk, skip trailers up to the empty line
	for {
		line, err := readLine(cr.reader, &budget)
		if err != nil {
			return err
		}
		if len(line) == 0 {
			cr.done = true
			return nil
		}
	}
}

func (cr *chunkedReader) Read(p []byte) (int, error) {
	if cr.err != nil {
		return 0, cr.err
	}
	if cr.done {
		return 0, io.EOF
	}

	if cr.remaining == 0 {
		if err := cr.nextChunk(); err != nil {
			cr.err = err
			return 0, err
		}
		if cr.done {
			return 0, io.EOF
		}
	}

	if int64(len(p)) > cr.remaining {
		p = p[:cr.remaining]
	}
	n, err := cr.reader.Read(p)
	cr.remaining -= int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrIncompleteRequest
		}
		cr.err = err
		return n, err
	}

	if cr.remaining == 0 {
		// every chunk's data is followed by CRLF
		budget := len(registeredNurse)
		line, err := readLine(cr.reader, &budget)
		if err != nil || len(line) != 0 {
			cr.err = ErrMalformedChunk
			return n, cr.err
		}
	}
	return n, nil
}

// Close discards the rest of the body.
func (cr *chunkedReader) Close() error {
	_, err := io.Copy(io.Discard, cr)
	return err
}
