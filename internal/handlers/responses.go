package handlers

import (
	"net/http"

	"vss-session/internal/errors"

	"github.com/labstack/echo/v4"
)

// ERROR RESPONSES
//
// Bridge handlers answer failures through these helpers only:
//
// 1. SendError - request problems the bridge detects itself (bad body, bad query)
//    SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
//
// 2. SendSessionError - anything returned by the session layer. Typed errors keep
//    their code and user message; anything else is reported as SYSTEM_001.
//
// 3. SendSystemError - unexpected internal failures. The cause is never echoed.

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSessionError maps a session-layer error onto its code and status
func SendSessionError(c echo.Context, err error) error {
	errorResponse := errors.FromError(err, getTraceID(c))
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendSystemError wraps a system error with generic message
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}
