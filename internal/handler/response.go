package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProblemDetails is the application/problem+json body (RFC 7807) returned by
// every failing API call. The terminal client decodes the same shape.
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError points at one rejected request field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

const problemBase = "https://portfolio.app/errors/"

const (
	ErrorTypeValidation   = problemBase + "validation"
	ErrorTypeNotFound     = problemBase + "not-found"
	ErrorTypeUnauthorized = problemBase + "unauthorized"
	ErrorTypeInternal     = problemBase + "internal"
	ErrorTypeUnavailable  = problemBase + "unavailable"
)

var problemTitles = map[string]string{
	ErrorTypeValidation:   "Validation Error",
	ErrorTypeNotFound:     "Not Found",
	ErrorTypeUnauthorized: "Unauthorized",
	ErrorTypeInternal:     "Internal Server Error",
	ErrorTypeUnavailable:  "Service Unavailable",
}

func writeProblem(c echo.Context, status int, problemType, detail string, fields []ValidationError) error {
	return c.JSON(status, ProblemDetails{
		Type:     problemType,
		Title:    problemTitles[problemType],
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   fields,
	})
}

// NewValidationError answers 400 listing the offending fields
func NewValidationError(c echo.Context, detail string, fields []ValidationError) error {
	return writeProblem(c, http.StatusBadRequest, ErrorTypeValidation, detail, fields)
}

// NewNotFoundError answers 404, e.g. for unknown accounts or banners
func NewNotFoundError(c echo.Context, detail string) error {
	return writeProblem(c, http.StatusNotFound, ErrorTypeNotFound, detail, nil)
}

// NewUnauthorizedError answers 401 when no workspace could be resolved
func NewUnauthorizedError(c echo.Context, detail string) error {
	return writeProblem(c, http.StatusUnauthorized, ErrorTypeUnauthorized, detail, nil)
}

func NewInternalError(c echo.Context, detail string) error {
	return writeProblem(c, http.StatusInternalServerError, ErrorTypeInternal, detail, nil)
}

// NewServiceUnavailableError answers 503 when an optional backend (object
// storage) is not configured
func NewServiceUnavailableError(c echo.Context, detail string) error {
	return writeProblem(c, http.StatusServiceUnavailable, ErrorTypeUnavailable, detail, nil)
}
