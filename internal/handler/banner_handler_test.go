package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dismissRequest(e *echo.Echo, bannerID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/banners/"+bannerID+"/dismiss", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(bannerID)
	setWorkspaceInContext(c, 1)
	return c, rec
}

func TestDismissBanner(t *testing.T) {
	e := echo.New()
	env := newTestEnv(false)
	env.addBanners()
	h := NewBannerHandler(env.bannerService, env.settingsService)

	c, rec := dismissRequest(e, "promoNanoX")
	require.NoError(t, h.DismissBanner(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// Idempotent
	c, rec = dismissRequest(e, "promoNanoX")
	require.NoError(t, h.DismissBanner(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.True(t, env.settings.Settings[1].DismissedBanners["promoNanoX"])

	published := env.publisher.Published()
	require.NotEmpty(t, published)
	assert.Equal(t, "banner.dismissed", published[0].Event.Type)
}

func TestDismissBanner_Errors(t *testing.T) {
	tests := []struct {
		name       string
		bannerID   string
		wantStatus int
	}{
		{"unknown banner", "nope", http.StatusNotFound},
		{"not dismissable", "maintenance", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			env := newTestEnv(false)
			env.addBanners()
			h := NewBannerHandler(env.bannerService, env.settingsService)

			c, rec := dismissRequest(e, tt.bannerID)
			require.NoError(t, h.DismissBanner(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Empty(t, env.publisher.Published())
		})
	}
}

func TestDismissBanner_NextBannerBecomesVisible(t *testing.T) {
	e := echo.New()
	env := newTestEnv(false)
	env.addBanners()
	env.addPortfolio()
	bannerHandler := NewBannerHandler(env.bannerService, env.settingsService)
	dashboardHandler := newTestDashboardHandler(env)

	c, _ := dismissRequest(e, "promoNanoX")
	require.NoError(t, bannerHandler.DismissBanner(c))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setWorkspaceInContext(c, 1)
	require.NoError(t, dashboardHandler.GetDashboard(c))

	var response DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.NotNil(t, response.Banner)
	assert.Equal(t, "maintenance", response.Banner.ID)
	assert.False(t, response.ShowSeparator)
}

func TestGetBanners(t *testing.T) {
	e := echo.New()
	env := newTestEnv(false)
	env.addBanners()
	h := NewBannerHandler(env.bannerService, env.settingsService)

	c, _ := dismissRequest(e, "promoNanoX")
	require.NoError(t, h.DismissBanner(c))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/banners", nil)
	rec := httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setWorkspaceInContext(c, 1)

	require.NoError(t, h.GetBanners(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response []BannerListItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, "promoNanoX", response[0].ID)
	assert.True(t, response[0].Dismissed)
	assert.Equal(t, "maintenance", response[1].ID)
	assert.False(t, response[1].Dismissed)
}

func iconRequest(e *echo.Echo, bannerID, filename string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	body, contentType := createMultipartForm("file", filename, data)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/banners/"+bannerID+"/icon", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(bannerID)
	setWorkspaceInContext(c, 1)
	return c, rec
}

func TestSetBannerIcon_Success(t *testing.T) {
	e := echo.New()
	env := newTestEnv(true)
	env.addBanners()
	h := NewBannerHandler(env.bannerService, env.settingsService)

	c, rec := iconRequest(e, "promoNanoX", "icon.png", createTestImageData(128, 128))
	require.NoError(t, h.SetBannerIcon(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var response BannerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "promoNanoX", response.ID)
	assert.True(t, strings.HasPrefix(response.IconURL, "https://icons.test/banners/promoNanoX/"))
	assert.Len(t, env.store.Objects, 1)

	published := env.publisher.Published()
	require.Len(t, published, 1)
	assert.True(t, published[0].All)
	assert.Equal(t, "banner.icon_set", published[0].Event.Type)
}

func TestSetBannerIcon_Errors(t *testing.T) {
	tests := []struct {
		name        string
		withStorage bool
		bannerID    string
		filename    string
		data        []byte
		wantStatus  int
	}{
		{"storage disabled", false, "promoNanoX", "icon.png", createTestImageData(64, 64), http.StatusServiceUnavailable},
		{"unknown banner", true, "nope", "icon.png", createTestImageData(64, 64), http.StatusNotFound},
		{"too small", true, "promoNanoX", "icon.png", createTestImageData(16, 16), http.StatusBadRequest},
		{"bad extension", true, "promoNanoX", "icon.gif", createTestImageData(64, 64), http.StatusBadRequest},
		{"not an image", true, "promoNanoX", "icon.png", []byte("not an image"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			env := newTestEnv(tt.withStorage)
			env.addBanners()
			h := NewBannerHandler(env.bannerService, env.settingsService)

			c, rec := iconRequest(e, tt.bannerID, tt.filename, tt.data)
			require.NoError(t, h.SetBannerIcon(c))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSetBannerIcon_MissingFile(t *testing.T) {
	e := echo.New()
	env := newTestEnv(true)
	env.addBanners()
	h := NewBannerHandler(env.bannerService, env.settingsService)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/banners/promoNanoX/icon", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("promoNanoX")
	setWorkspaceInContext(c, 1)

	require.NoError(t, h.SetBannerIcon(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func typedIconRequest(e *echo.Echo, bannerID, filename, partType string, data []byte) (echo.Context, *httptest.ResponseRecorder) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", partType)
	part, _ := writer.CreatePart(header)
	_, _ = part.Write(data)
	writer.Close()

	req := httptest.NewRequest(http.MethodPut, "/api/v1/banners/"+bannerID+"/icon", body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(bannerID)
	setWorkspaceInContext(c, 1)
	return c, rec
}

func TestSetBannerIcon_DeclaredContentType(t *testing.T) {
	tests := []struct {
		name       string
		partType   string
		wantStatus int
	}{
		{"png", "image/png", http.StatusOK},
		{"webp with params", "image/webp; q=1", http.StatusOK},
		{"gif", "image/gif", http.StatusBadRequest},
		{"svg", "image/svg+xml", http.StatusBadRequest},
		{"generic falls back to extension", "application/octet-stream", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			env := newTestEnv(true)
			env.addBanners()
			h := NewBannerHandler(env.bannerService, env.settingsService)

			c, rec := typedIconRequest(e, "promoNanoX", "icon.png", tt.partType, createTestImageData(64, 64))
			require.NoError(t, h.SetBannerIcon(c))
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantStatus == http.StatusBadRequest {
				var problem ProblemDetails
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
				require.Len(t, problem.Errors, 1)
				assert.Equal(t, "file", problem.Errors[0].Field)
				assert.Empty(t, env.store.Objects)
			}
		})
	}
}
