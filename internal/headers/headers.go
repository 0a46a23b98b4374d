package headers

import (
	"bytes"
	"iter"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// https://datatracker.ietf.org/doc/html/rfc9110#name-tokens
var fieldNameRegex = regexp.MustCompile(`^[a-zA-Z0-9!#$%&'*\+\-.^_\x60\|~]+$`)

// Headers is a case-insensitive collection of HTTP header fields.
// Keys are stored lowercased.
type Headers struct {
	headers map[string]string
}

func validHeaderValueByte(c byte) bool {
	switch {
	case c == 0x09: // HTAB
		return true
	case c == 0x20: // SP
		return true
	case 0x21 <= c && c <= 0x7E: // VCHAR
		return true
	case c >= 0x80: // obs-text
		return true
	}
	return false
}

func isValidFieldValue(val []byte) bool {
	for _, b := range val {
		if !validHeaderValueByte(b) {
			return false
		}
	}
	return true
}

func normalizeKey(key string) string {
	return strings.ToLower(key)
}

// Add adds a header. If the header already exists, the new value is appended
// to the existing one, separated by a comma.
func (h *Headers) Add(key, value string) {
	if !fieldNameRegex.MatchString(key) || !isValidFieldValue([]byte(value)) {
		// drop invalid headers to prevent response splitting
		return
	}

	key = normalizeKey(key)
	if existing, ok := h.headers[key]; ok {
		h.headers[key] = existing + ", " + value
	} else {
		h.headers[key] = value
	}
}

// Set replaces any existing value of the header.
func (h *Headers) Set(key, value string) {
	h.Remove(key)
	h.Add(key, value)
}

// Get returns the value of a header, or an empty string if absent.
func (h *Headers) Get(key string) string {
	return h.headers[normalizeKey(key)]
}

// Remove removes a header.
func (h *Headers) Remove(key string) {
	delete(h.headers, normalizeKey(key))
}

// All returns an iterator over all headers, ordered by key.
func (h *Headers) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range slices.Sorted(maps.Keys(h.headers)) {
			if !yield(k, h.headers[k]) {
				return
			}
		}
	}
}

// ParseFieldLine parses a single header line and adds it to the headers.
func (h *Headers) ParseFieldLine(data []byte) error {
	colonPos := bytes.IndexByte(data, ':')
	if colonPos == -1 {
		return ErrMalformedHeader
	}

	// leading whitespace in header key is allowed
	hkey := bytes.TrimLeft(data[:colonPos], " \t")
	hvalue := bytes.Trim(data[colonPos+1:], " \t")

	if !bytes.Equal(hkey, bytes.TrimRight(hkey, " ")) {
		// space between key and colon, invalid
		return ErrMalformedHeader
	}

	if !fieldNameRegex.Match(hkey) || !isValidFieldValue(hvalue) {
		return ErrMalformedHeader
	}

	h.Add(string(hkey), string(hvalue))
	return nil
}

// Size returns the number of distinct header keys.
func (h *Headers) Size() int {
	return len(h.headers)
}

// NewHeaders creates an empty Headers.
func NewHeaders() *Headers {
	return &Headers{
		headers: map[string]string{},
	}
}
