package response

import (
	"encoding/json"
)

// JSONResponse is a response that sends JSON.
type JSONResponse struct {
	Response
}

// NewJSONResponse creates a new JSON response.
func NewJSONResponse(data any) (Response, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &JSONResponse{
		Response: NewBytesResponse("application/json", body),
	}, nil
}
