package response

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONResponse(t *testing.T) {
	tests := []struct {
		name         string
		data         any
		expectedBody string
		expectError  bool
	}{
		{name: "map", data: map[string]string{"message": "boom"}, expectedBody: `{"message":"boom"}`},
		{name: "string", data: "hello", expectedBody: `"hello"`},
		{name: "unmarshalable", data: make(chan int), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := NewJSONResponse(tt.data)
			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "application/json", resp.GetHeaders().Get("content-type"))

			b, err := io.ReadAll(resp.GetBody())
			require.NoError(t, err)
			assert.Equal(t, tt.expectedBody, string(b))
		})
	}
}

func TestNewFatalResponse(t *testing.T) {
	cause := errors.New(`disk "a" on fire`)
	fr := NewFatalResponse(cause)

	assert.Equal(t, StatusInternalServerError, fr.GetStatusCode())
	assert.Equal(t, "Server Error", fr.GetReason())
	assert.Equal(t, "application/json", fr.GetHeaders().Get("content-type"))
	assert.Same(t, cause, fr.Cause())

	b, err := io.ReadAll(fr.GetBody())
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "disk \"a\" on fire"}`, string(b))

	got, ok := AsFatal(fr)
	require.True(t, ok)
	assert.Same(t, fr, got)

	_, ok = AsFatal(NewTextResponse("fine"))
	assert.False(t, ok)
}

func TestNewFatalResponseNilCause(t *testing.T) {
	fr := NewFatalResponse(nil)
	require.Error(t, fr.Cause())
	assert.Equal(t, StatusInternalServerError, fr.GetStatusCode())
}
