package errors

// ErrorCode represents a standardized error code used across the session layer and the bridge API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials     ErrorCode = "AUTH_001"
	AuthMissingToken           ErrorCode = "AUTH_002"
	AuthExpiredToken           ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat     ErrorCode = "AUTH_004"
	AuthInsufficientPermission ErrorCode = "AUTH_005"
	AuthSessionInvalid         ErrorCode = "AUTH_006"
	AuthPendingApproval        ErrorCode = "AUTH_007"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral          ErrorCode = "VALIDATION_001"
	ValidationRequiredField    ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat    ErrorCode = "VALIDATION_003"
	ValidationOutOfRange       ErrorCode = "VALIDATION_004"
	ValidationInvalidEmail     ErrorCode = "VALIDATION_005"
	ValidationEmailDomain      ErrorCode = "VALIDATION_006"
	ValidationPasswordPolicy   ErrorCode = "VALIDATION_007"
	ValidationPasswordMismatch ErrorCode = "VALIDATION_008"
	ValidationInvalidName      ErrorCode = "VALIDATION_009"
	ValidationInvalidCode      ErrorCode = "VALIDATION_010"
)

// Network error codes (NETWORK_*)
const (
	NetworkUnreachable ErrorCode = "NETWORK_001"
	NetworkTimeout     ErrorCode = "NETWORK_002"
	NetworkCircuitOpen ErrorCode = "NETWORK_003"
)

// Session error codes (SESSION_*)
const (
	SessionExpired          ErrorCode = "SESSION_001"
	SessionNotAuthenticated ErrorCode = "SESSION_002"
)

// Server error codes (SERVER_*)
const (
	ServerRejected      ErrorCode = "SERVER_001"
	ServerBadResponse   ErrorCode = "SERVER_002"
	ServerUserNotFound  ErrorCode = "SERVER_003"
	ServerAlreadyExists ErrorCode = "SERVER_004"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError      ErrorCode = "SYSTEM_001"
	SystemStorageError       ErrorCode = "SYSTEM_002"
	SystemServiceUnavailable ErrorCode = "SYSTEM_003"
	SystemConfigurationError ErrorCode = "SYSTEM_004"
	SystemUnexpectedError    ErrorCode = "SYSTEM_005"
	SystemRateLimitExceeded  ErrorCode = "SYSTEM_006"
	SystemRouteNotFound      ErrorCode = "SYSTEM_007"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials:     "Invalid email or password",
	AuthMissingToken:           "Authorization token is required",
	AuthExpiredToken:           "Authorization token has expired",
	AuthInvalidTokenFormat:     "Invalid authorization token format",
	AuthInsufficientPermission: "Insufficient permissions to perform this action",
	AuthSessionInvalid:         "Your session is no longer valid. Please sign in again",
	AuthPendingApproval:        "Your account is pending administrator approval",

	// Validation errors
	ValidationGeneral:          "Validation failed",
	ValidationRequiredField:    "Required field is missing",
	ValidationInvalidFormat:    "Invalid field format",
	ValidationOutOfRange:       "Field length is out of the allowed range",
	ValidationInvalidEmail:     "Please enter a valid email address",
	ValidationEmailDomain:      "Email domain is not allowed",
	ValidationPasswordPolicy:   "Password does not meet the security requirements",
	ValidationPasswordMismatch: "Passwords do not match",
	ValidationInvalidName:      "Name may only contain letters and spaces",
	ValidationInvalidCode:      "Verification code must be 6 digits",

	// Network errors
	NetworkUnreachable: "Unable to connect to the server. Please check your connection",
	NetworkTimeout:     "The server took too long to respond",
	NetworkCircuitOpen: "The server is temporarily unavailable. Please try again shortly",

	// Session errors
	SessionExpired:          "Your session has expired. Please sign in again",
	SessionNotAuthenticated: "You are not signed in",

	// Server errors
	ServerRejected:      "The server rejected the request",
	ServerBadResponse:   "The server returned an unexpected response",
	ServerUserNotFound:  "User not found",
	ServerAlreadyExists: "An account with this email already exists",

	// System errors
	SystemInternalError:      "An unexpected error occurred. Please contact support with trace ID",
	SystemStorageError:       "Local session storage error",
	SystemServiceUnavailable: "Service temporarily unavailable",
	SystemConfigurationError: "System configuration error",
	SystemUnexpectedError:    "An unexpected error occurred",
	SystemRateLimitExceeded:  "Rate limit exceeded. Please try again later",
	SystemRouteNotFound:      "Resource not found",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
