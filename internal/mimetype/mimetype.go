// Package mimetype maps file extensions to the content types the server
// advertises. It is a fixed allow-list, not a MIME database.
package mimetype

import (
	"path/filepath"
	"strings"
)

// Default is the content type for any extension not in the table.
const Default = "application/octet-stream"

var byExtension = map[string]string{
	// text
	".html": "text/html",
	".js":   "text/javascript",
	".css":  "text/css",
	// images
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".svg":  "image/svg+xml",
	// application
	".json": "application/json",
}

// Classify returns the content type for ext, which includes the leading dot.
// Matching ignores case.
func Classify(ext string) string {
	if ctype, ok := byExtension[strings.ToLower(ext)]; ok {
		return ctype
	}
	return Default
}

// ForPath classifies the extension of a filesystem path.
func ForPath(p string) string {
	return Classify(filepath.Ext(p))
}
