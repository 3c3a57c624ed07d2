package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
	traceID string
}

func (s *ResponseTestSuite) SetupTest() {
	s.traceID = "550e8400-e29b-41d4-a716-446655440000"
}

func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse_BasicUsage() {
	response := NewErrorResponse(AuthInvalidCredentials, s.traceID)

	s.Equal("AUTH_001", response.Error.Code)
	s.Equal("Invalid email or password", response.Error.Message)
	s.Equal(s.traceID, response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_WithMultipleOptions() {
	response := NewErrorResponse(
		ValidationInvalidEmail,
		s.traceID,
		WithMessage("Email domain is not allowed"),
		WithField("email"),
		WithDetails("domain: example.org"),
	)

	s.Equal("VALIDATION_005", response.Error.Code)
	s.Equal("Email domain is not allowed", response.Error.Message)
	s.Equal("email", response.Error.Field)
	s.Equal([]string{"domain: example.org"}, response.Error.Details)
}

func (s *ResponseTestSuite) TestNewValidationErrorResponse() {
	details := []string{"email: required", "password: required"}

	response := NewValidationErrorResponse(details, s.traceID)

	s.Equal("VALIDATION_001", response.Error.Code)
	s.Equal(details, response.Error.Details)
	s.Equal(http.StatusBadRequest, response.GetHTTPStatus())
}

func (s *ResponseTestSuite) TestFromError_SessionError() {
	err := fmt.Errorf("login: %w", NewValidationError("password", ValidationRequiredField, "Password is required"))

	response := FromError(err, s.traceID)

	s.Equal(string(ValidationRequiredField), response.Error.Code)
	s.Equal("Password is required", response.Error.Message)
	s.Equal("password", response.Error.Field)
	s.Equal(http.StatusBadRequest, response.GetHTTPStatus())
}

func (s *ResponseTestSuite) TestFromError_InternalErrorHidesDetails() {
	response := FromError(errors.New("sqlite: disk I/O error"), s.traceID)

	s.Equal(string(SystemInternalError), response.Error.Code)
	s.NotContains(response.Error.Message, "sqlite")
	s.Equal(http.StatusInternalServerError, response.GetHTTPStatus())
}

func (s *ResponseTestSuite) TestWrapSystemError_ReturnsOriginal() {
	internalErr := errors.New("redis connection refused")

	response, originalErr := WrapSystemError(internalErr, s.traceID)

	s.Equal("SYSTEM_001", response.Error.Code)
	s.Equal(internalErr, originalErr)
}

func (s *ResponseTestSuite) TestToJSON() {
	response := NewErrorResponse(SessionExpired, s.traceID)

	data, err := response.ToJSON()
	s.Require().NoError(err)

	var decoded map[string]map[string]any
	s.Require().NoError(json.Unmarshal(data, &decoded))
	s.Equal("SESSION_001", decoded["error"]["code"])
	s.Equal(s.traceID, decoded["error"]["trace_id"])
	s.NotContains(decoded["error"], "field")
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationPasswordPolicy, http.StatusBadRequest},
		{AuthInvalidCredentials, http.StatusUnauthorized},
		{SessionExpired, http.StatusUnauthorized},
		{AuthInsufficientPermission, http.StatusForbidden},
		{ServerAlreadyExists, http.StatusConflict},
		{NetworkUnreachable, http.StatusBadGateway},
		{NetworkCircuitOpen, http.StatusServiceUnavailable},
		{NetworkTimeout, http.StatusGatewayTimeout},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemRouteNotFound, http.StatusNotFound},
		{"UNKNOWN", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Equal(tc.expected, GetHTTPStatus(tc.code))
		})
	}
}

func (s *ResponseTestSuite) TestString() {
	response := NewErrorResponse(AuthMissingToken, s.traceID)
	s.Equal(fmt.Sprintf("[AUTH_002] Authorization token is required (trace: %s)", s.traceID), response.String())
	s.True(response.IsClientError())
}
