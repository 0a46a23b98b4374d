package response

// HTMLResponse is a response that sends HTML.
type HTMLResponse struct {
	Response
}

// NewHTMLResponse creates a new HTML response.
func NewHTMLResponse(body []byte) Response {
	return &HTMLResponse{
		Response: NewBytesResponse("text/html", body),
	}
}

// NewTextResponse creates a plain text response. The server uses it for
// protocol level rejections.
func NewTextResponse(body string) Response {
	return NewBytesResponse("text/plain", []byte(body))
}
