package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// problemDetails mirrors handler.ProblemDetails without field errors. The
// middleware package cannot import handler.
type problemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

const (
	errorTypeUnauthorized = "https://portfolio.app/errors/unauthorized"
	errorTypeRateLimit    = "https://portfolio.app/errors/rate-limit"
	errorTypeForbidden    = "https://portfolio.app/errors/forbidden"
)

func reject(c echo.Context, status int, problemType, title, detail string) error {
	return c.JSON(status, problemDetails{
		Type:     problemType,
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// unauthorizedError rejects a request whose bearer token or workspace is missing
func unauthorizedError(c echo.Context, detail string) error {
	return reject(c, http.StatusUnauthorized, errorTypeUnauthorized, "Unauthorized", detail)
}

// rateLimitError rejects a mutation once the caller has spent its budget
func rateLimitError(c echo.Context, detail string) error {
	return reject(c, http.StatusTooManyRequests, errorTypeRateLimit, "Rate Limit Exceeded", detail)
}

// forbiddenError rejects an authenticated subject that lacks admin rights
func forbiddenError(c echo.Context, detail string) error {
	return reject(c, http.StatusForbidden, errorTypeForbidden, "Forbidden", detail)
}
