package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminGuard_RequireAdmin(t *testing.T) {
	guard := NewAdminGuard([]string{" auth0|admin ", ""})

	tests := []struct {
		name     string
		subject  string
		wantCode int
	}{
		{"admin passes", "auth0|admin", http.StatusNoContent},
		{"other user is forbidden", "auth0|user", http.StatusForbidden},
		{"no subject is forbidden", "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPut, "/api/v1/banners/promo/icon", nil)
			if tt.subject != "" {
				req = req.WithContext(context.WithValue(req.Context(), Auth0IDKey, tt.subject))
			}
			rec := httptest.NewRecorder()

			h := guard.RequireAdmin()(func(c echo.Context) error {
				return c.NoContent(http.StatusNoContent)
			})
			require.NoError(t, h(e.NewContext(req, rec)))
			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusForbidden {
				var problem problemDetails
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
				assert.Equal(t, errorTypeForbidden, problem.Type)
				assert.Equal(t, http.StatusForbidden, problem.Status)
			}
		})
	}
}

func TestAdminGuard_EmptyListAdmitsNobody(t *testing.T) {
	guard := NewAdminGuard(nil)
	assert.False(t, guard.IsAdmin("auth0|anyone"))
	assert.False(t, guard.IsAdmin(""))
}
