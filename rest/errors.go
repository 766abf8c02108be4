package rest

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// Logger is the minimal logging surface the translator needs.
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// RespondError is the single place error kinds become status codes. Client
// errors keep their specific message; anything unexpected collapses into a
// generic internal error with the full detail logged server-side only.
func RespondError(c *fiber.Ctx, err error, logger Logger) error {
	var rich *errors.Error
	if !errors.As(err, &rich) {
		if logger != nil {
			logger.Error("unexpected error", "error", err, "path", c.Path())
		}
		return JSON(c, http.StatusInternalServerError, Failure("An unexpected error occurred"))
	}

	status := statusFor(rich)

	if status >= http.StatusInternalServerError {
		if logger != nil {
			logger.Error("internal error", "error", rich, "text_code", rich.TextCode, "path", c.Path())
		}
		return JSON(c, status, Failure("An unexpected error occurred"))
	}

	if logger != nil {
		logger.Warn("request rejected",
			"message", rich.Message,
			"text_code", rich.TextCode,
			"path", c.Path(),
		)
	}

	return JSON(c, status, Failure(rich.Message))
}

func statusFor(rich *errors.Error) int {
	if rich.Code >= http.StatusContinue && rich.Code <= http.StatusNetworkAuthenticationRequired {
		return rich.Code
	}

	switch rich.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError wraps an ozzo validation failure into the rich shape the
// translator understands, preserving the specific field message.
func ValidationError(err error) *errors.Error {
	return errors.Wrap(err, errors.CategoryValidation, err.Error()).
		WithCode(errors.CodeBadRequest).
		WithTextCode("VALIDATION_FAILED")
}

// BindError covers unparseable request bodies.
func BindError(err error) *errors.Error {
	return errors.Wrap(err, errors.CategoryBadInput, "Failed to parse request body").
		WithCode(errors.CodeBadRequest).
		WithTextCode("MALFORMED_BODY")
}
