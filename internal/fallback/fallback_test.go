package fallback

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		title string
	}{
		{name: "full document", doc: "<!DOCTYPE html><html><head><title> 404 | Not Found </title></head><body>x</body></html>", title: "404 | Not Found"},
		{name: "no title", doc: "<h1>Not Found</h1>", title: ""},
		{name: "title in body is ignored", doc: "<body><svg><title>icon</title></svg></body>", title: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "404.html")
			require.NoError(t, os.WriteFile(p, []byte(tt.doc), 0o644))

			info, err := Inspect(p)
			require.NoError(t, err)
			assert.Equal(t, p, info.Path)
			assert.Equal(t, len(tt.doc), info.Size)
			assert.Equal(t, tt.title, info.Title)
		})
	}
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Inspect(filepath.Join(dir, "missing.html"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	blank := filepath.Join(dir, "blank.html")
	require.NoError(t, os.WriteFile(blank, []byte(" \n\t"), 0o644))
	_, err = Inspect(blank)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestInspectBundledDocument(t *testing.T) {
	info, err := Inspect(filepath.Join("..", "..", "public", "404.html"))
	require.NoError(t, err)
	assert.NotEmpty(t, info.Title)
}
