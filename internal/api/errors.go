package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"vss-session/internal/dto"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// StatusError is a non-2xx backend response
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    []byte
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a 401 from the backend.
func IsUnauthorized(err error) bool {
	return StatusOf(err) == http.StatusUnauthorized
}

// ServerMessage returns the message text the backend sent with err, if any.
func ServerMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}

func errorMessage(body []byte) string {
	var parsed dto.ErrorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Text()
}
