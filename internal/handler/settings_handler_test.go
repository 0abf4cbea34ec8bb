package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSettings_Defaults(t *testing.T) {
	e := echo.New()
	env := newTestEnv(false)
	h := NewSettingsHandler(env.settingsService)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setWorkspaceInContext(c, 1)

	require.NoError(t, h.GetSettings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response SettingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "month", response.SelectedTimeRange)
	assert.Equal(t, "USD", response.CounterValue)
	assert.Equal(t, "balance|desc", response.OrderAccounts)
	assert.Empty(t, response.DismissedBanners)
	assert.Nil(t, response.UpdatedAt)
}

func TestUpdateSettings(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantField  string
		check      func(t *testing.T, r SettingsResponse)
	}{
		{
			name:       "selects time range",
			body:       `{"selectedTimeRange":"week"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, r SettingsResponse) {
				assert.Equal(t, "week", r.SelectedTimeRange)
				assert.Equal(t, "USD", r.CounterValue)
			},
		},
		{
			name:       "normalizes counter value",
			body:       `{"counterValue":"eur","orderAccounts":"name|asc"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, r SettingsResponse) {
				assert.Equal(t, "EUR", r.CounterValue)
				assert.Equal(t, "name|asc", r.OrderAccounts)
			},
		},
		{
			name:       "rejects unknown time range",
			body:       `{"selectedTimeRange":"decade"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "selectedTimeRange",
		},
		{
			name:       "rejects unknown currency",
			body:       `{"counterValue":"XYZW"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "counterValue",
		},
		{
			name:       "rejects unknown ordering",
			body:       `{"orderAccounts":"color|asc"}`,
			wantStatus: http.StatusBadRequest,
			wantField:  "orderAccounts",
		},
		{
			name:       "rejects empty patch",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "rejects malformed json",
			body:       `{"selectedTimeRange":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			env := newTestEnv(false)
			h := NewSettingsHandler(env.settingsService)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			setWorkspaceInContext(c, 1)

			require.NoError(t, h.UpdateSettings(c))
			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus != http.StatusOK {
				var problem ProblemDetails
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
				assert.Equal(t, ErrorTypeValidation, problem.Type)
				if tt.wantField != "" {
					require.Len(t, problem.Errors, 1)
					assert.Equal(t, tt.wantField, problem.Errors[0].Field)
				}
				assert.Empty(t, env.publisher.Published())
				return
			}

			var response SettingsResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			tt.check(t, response)

			published := env.publisher.Published()
			require.Len(t, published, 1)
			assert.Equal(t, int32(1), published[0].WorkspaceID)
			assert.Equal(t, "settings.updated", published[0].Event.Type)
		})
	}
}

func TestUpdateSettings_NextDashboardUsesNewRange(t *testing.T) {
	e := echo.New()
	env := newTestEnv(false)
	env.addPortfolio()
	settingsHandler := NewSettingsHandler(env.settingsService)
	dashboardHandler := newTestDashboardHandler(env)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(`{"selectedTimeRange":"week"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	setWorkspaceInContext(c, 1)
	require.NoError(t, settingsHandler.UpdateSettings(c))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setWorkspaceInContext(c, 1)
	require.NoError(t, dashboardHandler.GetDashboard(c))

	var response DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, string(domain.TimeRangeWeek), response.SelectedTimeRange)
	assert.Equal(t, 7, response.DaysCount)
	require.NotNil(t, response.Summary)
	assert.Len(t, response.Summary.History, 8)
}
