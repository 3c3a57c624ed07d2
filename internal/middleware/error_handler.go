package middleware

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"vss-session/internal/errors"
	"vss-session/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// NewHTTPErrorHandler formats every error that reaches echo as an ErrorResponse,
// logs it and counts it in bridge_errors_total on reg
func NewHTTPErrorHandler(reg prometheus.Registerer, log *slog.Logger) echo.HTTPErrorHandler {
	errorsTotal := promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_errors_total",
			Help: "Total number of bridge errors by code, endpoint, and status",
		},
		[]string{"code", "endpoint", "status"},
	)

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		traceID := GetTraceID(c)
		if traceID == "" {
			traceID = "unknown"
		}

		errorResponse, httpStatus := toErrorResponse(err, traceID)

		logLevel := slog.LevelWarn
		if httpStatus >= 500 {
			logLevel = slog.LevelError
		}

		log.Log(c.Request().Context(), logLevel, "Bridge error",
			"trace_id", traceID,
			"error_code", errorResponse.Error.Code,
			"status", httpStatus,
			"message", errorResponse.Error.Message,
			"path", c.Request().URL.Path,
			"method", c.Request().Method,
			"error", err.Error(),
		)

		errorsTotal.WithLabelValues(
			errorResponse.Error.Code,
			c.Path(),
			fmt.Sprintf("%d", httpStatus),
		).Inc()

		if sendErr := c.JSON(httpStatus, errorResponse); sendErr != nil {
			log.Error("Failed to send error response",
				"trace_id", traceID,
				"error", sendErr.Error(),
			)
		}
	}
}

func toErrorResponse(err error, traceID string) (*errors.ErrorResponse, int) {
	var echoErr *echo.HTTPError
	if stderrors.As(err, &echoErr) {
		errorResponse := errors.NewErrorResponse(
			mapHTTPStatusToErrorCode(echoErr.Code),
			traceID,
			errors.WithMessage(fmt.Sprintf("%v", echoErr.Message)),
		)
		return errorResponse, echoErr.Code
	}

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		return errors.NewValidationErrorResponse(validation.FieldErrors(validationErrs), traceID), http.StatusBadRequest
	}

	var sessionErr *errors.Error
	if stderrors.As(err, &sessionErr) {
		errorResponse := errors.FromError(sessionErr, traceID)
		return errorResponse, errorResponse.GetHTTPStatus()
	}

	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return errorResponse, errorResponse.GetHTTPStatus()
}

// mapHTTPStatusToErrorCode maps HTTP status codes to error codes
func mapHTTPStatusToErrorCode(status int) errors.ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return errors.ValidationGeneral
	case http.StatusUnauthorized:
		return errors.SessionNotAuthenticated
	case http.StatusForbidden:
		return errors.AuthInsufficientPermission
	case http.StatusNotFound:
		return errors.SystemRouteNotFound
	case http.StatusMethodNotAllowed:
		return errors.ValidationGeneral
	case http.StatusUnprocessableEntity:
		return errors.ValidationGeneral
	case http.StatusTooManyRequests:
		return errors.SystemRateLimitExceeded
	case http.StatusInternalServerError:
		return errors.SystemInternalError
	case http.StatusServiceUnavailable:
		return errors.SystemServiceUnavailable
	default:
		return errors.SystemUnexpectedError
	}
}
