package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies a session failure by where it originated.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuthentication
	KindNetwork
	KindSessionExpired
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindNetwork:
		return "network"
	case KindSessionExpired:
		return "session_expired"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by the session layer. Message is
// always safe to show to the user.
type Error struct {
	Kind    Kind
	Code    ErrorCode
	Message string
	Field   string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError reports a failed local rule for field. No network call was made.
func NewValidationError(field string, code ErrorCode, message string) *Error {
	if message == "" {
		message = GetErrorMessage(code)
	}
	return &Error{Kind: KindValidation, Code: code, Field: field, Message: message}
}

// NewAuthenticationError reports a 401 or a rejected session. An empty message uses the code's default.
func NewAuthenticationError(code ErrorCode, message string, status int, cause error) *Error {
	if message == "" {
		message = GetErrorMessage(code)
	}
	return &Error{Kind: KindAuthentication, Code: code, Message: message, Status: status, Err: cause}
}

// NewNetworkError reports a call that produced no response.
func NewNetworkError(code ErrorCode, cause error) *Error {
	return &Error{Kind: KindNetwork, Code: code, Message: GetErrorMessage(code), Err: cause}
}

// NewSessionExpiredError reports a refresh that could not renew the session.
func NewSessionExpiredError(cause error) *Error {
	return &Error{Kind: KindSessionExpired, Code: SessionExpired, Message: GetErrorMessage(SessionExpired), Err: cause}
}

// NewServerError reports a non-401 rejection. message is the server's own text when it sent one.
func NewServerError(status int, message string, cause error) *Error {
	if message == "" {
		message = GetErrorMessage(ServerRejected)
	}
	return &Error{Kind: KindServer, Code: ServerRejected, Message: message, Status: status, Err: cause}
}

// NewBadResponseError reports a 2xx response whose body could not be used.
func NewBadResponseError(cause error) *Error {
	return &Error{Kind: KindServer, Code: ServerBadResponse, Message: GetErrorMessage(ServerBadResponse), Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var sessionErr *Error
	if stderrors.As(err, &sessionErr) {
		return sessionErr.Kind
	}
	return 0
}

func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

func IsAuthentication(err error) bool {
	return KindOf(err) == KindAuthentication
}

func IsNetwork(err error) bool {
	return KindOf(err) == KindNetwork
}

func IsSessionExpired(err error) bool {
	return KindOf(err) == KindSessionExpired
}

// UserMessage returns the one human-readable message to display for err.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var sessionErr *Error
	if stderrors.As(err, &sessionErr) && sessionErr.Message != "" {
		return sessionErr.Message
	}
	return GetErrorMessage(SystemUnexpectedError)
}

// CodeOf returns the code carried by err, or SystemUnexpectedError.
func CodeOf(err error) ErrorCode {
	var sessionErr *Error
	if stderrors.As(err, &sessionErr) && sessionErr.Code != "" {
		return sessionErr.Code
	}
	return SystemUnexpectedError
}
