package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorResponse represents the standardized bridge error response structure
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the detailed error information
type ErrorDetail struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Details []string `json:"details,omitempty"`
	TraceID string   `json:"trace_id"`
}

// ErrorOption is a functional option for configuring error responses
type ErrorOption func(*ErrorResponse)

// WithDetails adds detail messages to the error response
func WithDetails(details ...string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Details = details
	}
}

// WithMessage overrides the default message for the error code
func WithMessage(message string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Message = message
	}
}

// WithField names the input field a validation error belongs to
func WithField(field string) ErrorOption {
	return func(er *ErrorResponse) {
		er.Error.Field = field
	}
}

// NewErrorResponse creates a standardized error response with the given error code and trace ID
func NewErrorResponse(code ErrorCode, traceID string, opts ...ErrorOption) *ErrorResponse {
	response := &ErrorResponse{
		Error: ErrorDetail{
			Code:    string(code),
			Message: GetErrorMessage(code),
			TraceID: traceID,
			Details: []string{},
		},
	}

	for _, opt := range opts {
		opt(response)
	}

	return response
}

// NewValidationErrorResponse creates a validation error response from binding failures
func NewValidationErrorResponse(details []string, traceID string) *ErrorResponse {
	return NewErrorResponse(ValidationGeneral, traceID, WithDetails(details...))
}

// FromError converts a session-layer error into a response. Errors that are not
// *Error are treated as internal and their text is not exposed.
func FromError(err error, traceID string) *ErrorResponse {
	var sessionErr *Error
	if !stderrors.As(err, &sessionErr) {
		response, _ := WrapSystemError(err, traceID)
		return response
	}

	opts := []ErrorOption{WithMessage(sessionErr.Message)}
	if sessionErr.Field != "" {
		opts = append(opts, WithField(sessionErr.Field))
	}
	return NewErrorResponse(sessionErr.Code, traceID, opts...)
}

// WrapSystemError wraps an internal error with a generic system error message
// The internal error is returned separately for logging
func WrapSystemError(err error, traceID string) (*ErrorResponse, error) {
	return NewErrorResponse(SystemInternalError, traceID), err
}

// ToJSON serializes the error response to JSON bytes
func (er *ErrorResponse) ToJSON() ([]byte, error) {
	return json.Marshal(er)
}

// GetHTTPStatus returns the appropriate HTTP status code for the error code
func GetHTTPStatus(code ErrorCode) int {
	switch code {
	// 400 Bad Request - local validation failures
	case ValidationGeneral, ValidationRequiredField, ValidationInvalidFormat,
		ValidationOutOfRange, ValidationInvalidEmail, ValidationEmailDomain,
		ValidationPasswordPolicy, ValidationPasswordMismatch, ValidationInvalidName,
		ValidationInvalidCode:
		return http.StatusBadRequest

	// 401 Unauthorized - credentials or session rejected
	case AuthInvalidCredentials, AuthMissingToken, AuthExpiredToken, AuthInvalidTokenFormat,
		AuthSessionInvalid, SessionExpired, SessionNotAuthenticated:
		return http.StatusUnauthorized

	// 403 Forbidden - authorization failures
	case AuthInsufficientPermission, AuthPendingApproval:
		return http.StatusForbidden

	case ServerUserNotFound, SystemRouteNotFound:
		return http.StatusNotFound

	case ServerAlreadyExists:
		return http.StatusConflict

	case ServerRejected:
		return http.StatusUnprocessableEntity

	// 502/503/504 - upstream trouble
	case ServerBadResponse, NetworkUnreachable:
		return http.StatusBadGateway
	case NetworkCircuitOpen, SystemServiceUnavailable:
		return http.StatusServiceUnavailable
	case NetworkTimeout:
		return http.StatusGatewayTimeout

	case SystemRateLimitExceeded:
		return http.StatusTooManyRequests

	default:
		return http.StatusInternalServerError
	}
}

// GetHTTPStatus returns the HTTP status code for the error response
func (er *ErrorResponse) GetHTTPStatus() int {
	return GetHTTPStatus(ErrorCode(er.Error.Code))
}

// IsClientError returns true if the error is a 4xx client error
func (er *ErrorResponse) IsClientError() bool {
	status := er.GetHTTPStatus()
	return status >= 400 && status < 500
}

// String returns a string representation of the error response
func (er *ErrorResponse) String() string {
	return fmt.Sprintf("[%s] %s (trace: %s)", er.Error.Code, er.Error.Message, er.Error.TraceID)
}
