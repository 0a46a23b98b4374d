package mimetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".html", "text/html"},
		{".HTML", "text/html"},
		{".Html", "text/html"},
		{".js", "text/javascript"},
		{".css", "text/css"},
		{".jpg", "image/jpeg"},
		{".JPEG", "image/jpeg"},
		{".png", "image/png"},
		{".svg", "image/svg+xml"},
		{".json", "application/json"},
		{".xyz", Default},
		{".htm", Default},
		{"", Default},
		{"html", Default},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.ext))
		})
	}
}

func TestForPath(t *testing.T) {
	assert.Equal(t, "text/html", ForPath("/srv/site/index.html"))
	assert.Equal(t, "text/css", ForPath("/srv/site/STYLE.CSS"))
	assert.Equal(t, Default, ForPath("/srv/site/Makefile"))
	assert.Equal(t, Default, ForPath("/srv/site.d/README"))
	assert.Equal(t, "application/json", ForPath("data.v2.json"))
}
