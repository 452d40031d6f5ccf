package types

import "errors"

// ErrNoAPIKey is returned when the upstream API key is not configured.
var ErrNoAPIKey = errors.New("no API key configured")

// ErrorBody is the JSON body returned to callers on every failure path.
type ErrorBody struct {
	Error string `json:"error"`
}

// Caller-visible error messages.
const (
	MsgMethodNotAllowed = "Please send a POST request"
	MsgConfigError      = "AI Service Config Error"
	MsgInvalidJSON      = "Invalid JSON"
	MsgMessagesRequired = "Messages required"
)

// NewErrorBody creates an error body with the given message.
func NewErrorBody(message string) *ErrorBody {
	return &ErrorBody{Error: message}
}
