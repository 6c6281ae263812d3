package utils

// ErrorResponse is the JSON body for failed requests: a machine-readable
// error kind plus a human-readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
