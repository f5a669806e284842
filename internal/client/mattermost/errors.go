package mattermost

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when the server answers the liveness probe
// with anything other than an OK status.
var ErrUnavailable = errors.New("server unavailable")

// AppError is the structured error body the Mattermost API returns on
// non-2xx responses. The ID is a stable machine-readable identifier such as
// "api.user.login.invalid_credentials"; Message is server-side
// human-readable text.
type AppError struct {
	ID            string `json:"id"`
	Message       string `json:"message"`
	DetailedError string `json:"detailed_error,omitempty"`
	RequestID     string `json:"request_id,omitempty"`
	StatusCode    int    `json:"status_code,omitempty"`
}

// Error renders "id: message" so callers can classify on either part.
func (e *AppError) Error() string {
	switch {
	case e.ID != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.ID, e.Message)
	case e.ID != "":
		return e.ID
	default:
		return e.Message
	}
}
