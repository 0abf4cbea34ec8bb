package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AdminGuard restricts routes that change data shared by every workspace,
// such as the banner catalog, to an allow-list of Auth0 subjects
type AdminGuard struct {
	subjects map[string]bool
}

// NewAdminGuard creates an AdminGuard. An empty list admits nobody.
func NewAdminGuard(subjects []string) *AdminGuard {
	g := &AdminGuard{subjects: make(map[string]bool)}
	for _, s := range subjects {
		if s = strings.TrimSpace(s); s != "" {
			g.subjects[s] = true
		}
	}
	return g
}

// IsAdmin reports whether subject is on the allow-list
func (g *AdminGuard) IsAdmin(subject string) bool {
	return subject != "" && g.subjects[subject]
}

// RequireAdmin must run after Authenticate
func (g *AdminGuard) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := GetAuth0ID(c)
			if !g.IsAdmin(subject) {
				log.Warn().Str("auth0_id", subject).Str("path", c.Path()).Msg("Admin route denied")
				return forbiddenError(c, "admin access required")
			}
			return next(c)
		}
	}
}
