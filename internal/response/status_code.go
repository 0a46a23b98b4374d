package response

// StatusCode defines HTTP status codes as enums
type StatusCode int

const (
	StatusOK StatusCode = 200

	StatusBadRequest                  StatusCode = 400
	StatusNotFound                    StatusCode = 404
	StatusRequestTimeout              StatusCode = 408
	StatusRequestHeaderFieldsTooLarge StatusCode = 431

	StatusInternalServerError StatusCode = 500
	StatusNotImplemented      StatusCode = 501
)

var reasonPhrases = map[StatusCode]string{
	StatusOK: "OK",

	StatusBadRequest:                  "Bad Request",
	StatusNotFound:                    "Not Found",
	StatusRequestTimeout:              "Request Timeout",
	StatusRequestHeaderFieldsTooLarge: "Request Header Fields Too Large",

	StatusInternalServerError: "Internal Server Error",
	StatusNotImplemented:      "Not Implemented",
}

// GetStatusReason returns the standard reason phrase for the given status code.
func GetStatusReason(s StatusCode) string {
	return reasonPhrases[s]
}

// Reason phrases used by the file server in place of the standard ones.
const (
	ReasonSuccess     = "Success"
	ReasonNotFound    = "Not Found"
	ReasonServerError = "Server Error"
)
