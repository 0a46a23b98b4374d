package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetStatusReason(t *testing.T) {
	tests := map[StatusCode]string{
		StatusOK:                          "OK",
		StatusBadRequest:                  "Bad Request",
		StatusNotFound:                    "Not Found",
		StatusRequestTimeout:              "Request Timeout",
		StatusRequestHeaderFieldsTooLarge: "Request Header Fields Too Large",
		StatusInternalServerError:         "Internal Server Error",
		StatusNotImplemented:              "Not Implemented",
	}
	for code, reason := range tests {
		assert.Equal(t, reason, GetStatusReason(code), "status %d", code)
	}
	assert.Empty(t, GetStatusReason(StatusCode(418)))
}
