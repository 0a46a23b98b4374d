// Package fallback checks the not-found document at startup so a broken one
// is noticed before the first miss turns into a fatal error.
package fallback

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Info describes a readable fallback document.
type Info struct {
	Path  string
	Size  int
	Title string
}

// Inspect reads and parses the document at path. The document is not kept;
// requests read it again every time.
func Inspect(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("fallback: %s: %w", path, ErrEmpty)
	}

	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fallback: %s: %w", path, err)
	}
	doc := goquery.NewDocumentFromNode(root)

	return &Info{
		Path:  path,
		Size:  len(data),
		Title: strings.TrimSpace(doc.Find("head title").First().Text()),
	}, nil
}
