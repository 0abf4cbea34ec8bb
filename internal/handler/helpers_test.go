package handler

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/middleware"
	"github.com/dafibh/fortuna/portfolio-backend/internal/service"
	"github.com/dafibh/fortuna/portfolio-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

// setWorkspaceInContext sets the auth subject and workspace ID in the request context
func setWorkspaceInContext(c echo.Context, workspaceID int32) {
	ctx := context.WithValue(c.Request().Context(), middleware.Auth0IDKey, "auth0|test")
	ctx = context.WithValue(ctx, middleware.WorkspaceIDKey, workspaceID)
	c.SetRequest(c.Request().WithContext(ctx))
}

// testEnv wires services over in-memory repositories
type testEnv struct {
	accounts   *testutil.MockAccountRepository
	workspaces *testutil.MockWorkspaceRepository
	rates      *testutil.MockCountervalueRepository
	settings   *testutil.MockSettingsRepository
	banners    *testutil.MockBannerRepository
	store      *testutil.MockObjectStore
	publisher  *testutil.MockEventPublisher

	settingsService  *service.SettingsService
	bannerService    *service.BannerService
	accountService   *service.AccountService
	dashboardService *service.DashboardService
}

func newTestEnv(withStorage bool) *testEnv {
	env := &testEnv{
		accounts:   testutil.NewMockAccountRepository(),
		workspaces: testutil.NewMockWorkspaceRepository(),
		rates:      testutil.NewMockCountervalueRepository(),
		settings:   testutil.NewMockSettingsRepository(),
		banners:    testutil.NewMockBannerRepository(),
		publisher:  testutil.NewMockEventPublisher(),
	}
	synced := testNow.Add(-time.Hour)
	env.workspaces.AddWorkspace(&domain.Workspace{ID: 1, Name: "Main", LastSyncedAt: &synced}, "auth0|test")
	env.workspaces.AddWorkspace(&domain.Workspace{ID: 2, Name: "Fresh"}, "auth0|fresh")

	iconService := service.NewIconService(nil, time.Hour)
	if withStorage {
		env.store = testutil.NewMockObjectStore()
		iconService = service.NewIconService(env.store, time.Hour)
	}

	env.settingsService = service.NewSettingsService(env.settings)
	env.settingsService.SetEventPublisher(env.publisher)
	env.bannerService = service.NewBannerService(env.banners, env.settings, iconService)
	env.bannerService.SetEventPublisher(env.publisher)
	env.accountService = service.NewAccountService(env.accounts)
	env.dashboardService = service.NewDashboardService(env.accounts, env.workspaces, env.rates, env.settingsService, env.bannerService)
	return env
}

func (env *testEnv) addPortfolio() {
	btc := domain.Currency{ID: "bitcoin", Ticker: "BTC", Name: "Bitcoin", Units: 8}
	eth := domain.Currency{ID: "ethereum", Ticker: "ETH", Name: "Ethereum", Units: 8}
	env.accounts.AddAccount(&domain.Account{
		ID:          "btc-1",
		WorkspaceID: 1,
		Name:        "Bitcoin 1",
		Index:       1,
		Currency:    btc,
		Balance:     decimal.NewFromInt(10),
		Operations: []domain.Operation{
			{ID: "o1", AccountID: "btc-1", Hash: "h1", Type: domain.OperationTypeIn, Value: decimal.NewFromInt(2), Date: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
			{ID: "o2", AccountID: "btc-1", Hash: "h2", Type: domain.OperationTypeOut, Value: decimal.NewFromInt(1), Date: time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)},
			{ID: "o3", AccountID: "btc-1", Hash: "h3", Type: domain.OperationTypeIn, Value: decimal.NewFromInt(4), Date: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)},
		},
	})
	env.accounts.AddAccount(&domain.Account{
		ID:          "eth-1",
		WorkspaceID: 1,
		Name:        "Ethereum 1",
		Index:       0,
		Currency:    eth,
		Balance:     decimal.NewFromInt(5),
	})
	march := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	env.rates.AddRate(domain.CountervalueRate{From: "BTC", To: "USD", Date: march, Rate: decimal.NewFromInt(100)})
	env.rates.AddRate(domain.CountervalueRate{From: "ETH", To: "USD", Date: march, Rate: decimal.NewFromInt(10)})
}

func (env *testEnv) addBanners() {
	env.banners.AddBanner(domain.Banner{
		ID:          "promoNanoX",
		Priority:    10,
		Dismissable: true,
		Content: domain.BannerContent{
			MessageKey:   "banners.promoteMobile",
			Status:       domain.BannerStatusDark,
			LinkLabelKey: "common.learnMore",
			LinkURL:      "https://shop.example.com/nano-x",
		},
	})
	env.banners.AddBanner(domain.Banner{
		ID:       "maintenance",
		Priority: 20,
		Content:  domain.BannerContent{MessageKey: "banners.maintenance", Status: domain.BannerStatusAlert},
	})
}

// createTestImageData creates a valid PNG image for testing
func createTestImageData(width, height int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// createMultipartForm creates a multipart form with file data
func createMultipartForm(fieldName, filename string, data []byte) (*bytes.Buffer, string) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	part, _ := writer.CreateFormFile(fieldName, filename)
	_, _ = part.Write(data)

	writer.Close()
	return body, writer.FormDataContentType()
}
