package handler

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/middleware"
	"github.com/dafibh/fortuna/portfolio-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// SettingsHandler handles settings-related HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents the update settings request body.
// Omitted fields keep their current value.
type UpdateSettingsRequest struct {
	SelectedTimeRange *string `json:"selectedTimeRange"`
	CounterValue      *string `json:"counterValue"`
	OrderAccounts     *string `json:"orderAccounts"`
}

// SettingsResponse represents workspace settings in API responses
type SettingsResponse struct {
	SelectedTimeRange string   `json:"selectedTimeRange"`
	CounterValue      string   `json:"counterValue"`
	OrderAccounts     string   `json:"orderAccounts"`
	DismissedBanners  []string `json:"dismissedBanners"`
	UpdatedAt         *string  `json:"updatedAt"`
}

// GetSettings godoc
// @Summary Get settings
// @Description Get dashboard settings of the current workspace, defaults when never saved
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SettingsResponse
// @Failure 401 {object} ProblemDetails
// @Router /settings [get]
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	settings, err := h.settingsService.Get(c.Request().Context(), workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get settings")
		return NewInternalError(c, "Failed to get settings")
	}

	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

// UpdateSettings godoc
// @Summary Update settings
// @Description Partially update dashboard settings and notify connected clients
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateSettingsRequest true "Settings patch"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Router /settings [put]
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	patch := domain.SettingsPatch{
		CounterValue:  req.CounterValue,
		OrderAccounts: req.OrderAccounts,
	}
	if req.SelectedTimeRange != nil {
		tr := domain.TimeRange(*req.SelectedTimeRange)
		patch.SelectedTimeRange = &tr
	}

	settings, err := h.settingsService.Update(c.Request().Context(), workspaceID, patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return NewValidationError(c, "No settings to update", nil)
		case errors.Is(err, domain.ErrInvalidTimeRange):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "selectedTimeRange", Message: "Must be one of: day, week, month, year"},
			})
		case errors.Is(err, domain.ErrInvalidCounterValue):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "counterValue", Message: "Must be an ISO 4217 currency code"},
			})
		case errors.Is(err, domain.ErrInvalidOrdering):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "orderAccounts", Message: "Must be <balance|name|index>|<asc|desc>"},
			})
		default:
			log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to update settings")
			return NewInternalError(c, "Failed to update settings")
		}
	}

	log.Info().Int32("workspace_id", workspaceID).Msg("Settings updated")

	return c.JSON(http.StatusOK, toSettingsResponse(settings))
}

func toSettingsResponse(s *domain.Settings) SettingsResponse {
	dismissed := make([]string, 0, len(s.DismissedBanners))
	for id, ok := range s.DismissedBanners {
		if ok {
			dismissed = append(dismissed, id)
		}
	}
	sort.Strings(dismissed)

	var updatedAt *string
	if !s.UpdatedAt.IsZero() {
		v := s.UpdatedAt.UTC().Format(time.RFC3339)
		updatedAt = &v
	}

	return SettingsResponse{
		SelectedTimeRange: string(s.SelectedTimeRange),
		CounterValue:      s.CounterValue,
		OrderAccounts:     s.OrderAccounts,
		DismissedBanners:  dismissed,
		UpdatedAt:         updatedAt,
	}
}
