package response

import "errors"

type errorBody struct {
	Message string `json:"message"`
}

// FatalResponse is the 500 answer to a failure nobody handled. It carries the
// failure so the server can report it to whoever supervises the process after
// the response has been written.
type FatalResponse struct {
	Response
	cause error
}

// NewFatalResponse builds a 500 "Server Error" response whose JSON body is
// {"message": cause.Error()}.
func NewFatalResponse(cause error) *FatalResponse {
	if cause == nil {
		cause = errors.New("unknown failure")
	}

	// a struct with one string field always marshals
	jr, _ := NewJSONResponse(errorBody{Message: cause.Error()})
	jr.WithStatusCode(StatusInternalServerError).WithReason(ReasonServerError)

	return &FatalResponse{Response: jr, cause: cause}
}

// Cause returns the failure that produced the response.
func (fr *FatalResponse) Cause() error {
	return fr.cause
}

// AsFatal reports whether r is a fatal response.
func AsFatal(r Response) (*FatalResponse, bool) {
	fr, ok := r.(*FatalResponse)
	return fr, ok
}
