package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/dafibh/fortuna/portfolio-backend/internal/domain"
	"github.com/dafibh/fortuna/portfolio-backend/internal/middleware"
	"github.com/dafibh/fortuna/portfolio-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// BannerHandler handles banner-related HTTP requests
type BannerHandler struct {
	bannerService   *service.BannerService
	settingsService *service.SettingsService
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(bannerService *service.BannerService, settingsService *service.SettingsService) *BannerHandler {
	return &BannerHandler{
		bannerService:   bannerService,
		settingsService: settingsService,
	}
}

// BannerListItemResponse represents a banner with its dismissal state
type BannerListItemResponse struct {
	BannerResponse
	Priority  int  `json:"priority"`
	Dismissed bool `json:"dismissed"`
}

// GetBanners godoc
// @Summary List banners
// @Description List active banners in display order with the workspace's dismissals applied
// @Tags banners
// @Produce json
// @Security BearerAuth
// @Success 200 {array} BannerListItemResponse
// @Failure 401 {object} ProblemDetails
// @Router /banners [get]
func (h *BannerHandler) GetBanners(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	ctx := c.Request().Context()
	settings, err := h.settingsService.Get(ctx, workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get settings")
		return NewInternalError(c, "Failed to get banners")
	}

	banners, err := h.bannerService.List(ctx, workspaceID, settings.DismissedBanners)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to list banners")
		return NewInternalError(c, "Failed to get banners")
	}

	response := make([]BannerListItemResponse, len(banners))
	for i := range banners {
		response[i] = BannerListItemResponse{
			BannerResponse: *toBannerResponse(&banners[i]),
			Priority:       banners[i].Priority,
			Dismissed:      banners[i].Dismissed,
		}
	}
	return c.JSON(http.StatusOK, response)
}

// DismissBanner godoc
// @Summary Dismiss a banner
// @Description Hide a dismissable banner for the current workspace; repeating the call is a no-op
// @Tags banners
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Success 204
// @Failure 400 {object} ProblemDetails
// @Failure 401 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /banners/{id}/dismiss [post]
func (h *BannerHandler) DismissBanner(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	bannerID := c.Param("id")
	if bannerID == "" {
		return NewValidationError(c, "Banner ID required", []ValidationError{
			{Field: "id", Message: "Banner ID is required"},
		})
	}

	err := h.bannerService.Dismiss(c.Request().Context(), workspaceID, bannerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBannerNotFound):
			return NewNotFoundError(c, "Banner not found")
		case errors.Is(err, domain.ErrBannerNotDismissable):
			return NewValidationError(c, "Banner cannot be dismissed", nil)
		default:
			log.Error().Err(err).Int32("workspace_id", workspaceID).Str("banner_id", bannerID).Msg("Failed to dismiss banner")
			return NewInternalError(c, "Failed to dismiss banner")
		}
	}

	log.Info().Int32("workspace_id", workspaceID).Str("banner_id", bannerID).Msg("Banner dismissed")

	return c.NoContent(http.StatusNoContent)
}

// SetBannerIcon godoc
// @Summary Set a banner icon
// @Description Upload an icon (JPEG, PNG or WebP, at most 2MB, at least 32x32) resized to 64px wide
// @Tags banners
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Banner ID"
// @Param file formData file true "Icon image"
// @Success 200 {object} BannerResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /banners/{id}/icon [put]
func (h *BannerHandler) SetBannerIcon(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}

	if !service.IsValidImageFormat(uploadContentType(file)) {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: service.ErrInvalidFormat.Error()},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	bannerID := c.Param("id")
	banner, err := h.bannerService.SetIcon(c.Request().Context(), bannerID, data, file.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageStorageNotConfigured):
			return NewServiceUnavailableError(c, "Icon uploads are disabled (storage not configured)")
		case errors.Is(err, domain.ErrBannerNotFound):
			return NewNotFoundError(c, "Banner not found")
		case errors.Is(err, service.ErrImageTooLarge),
			errors.Is(err, service.ErrInvalidFormat),
			errors.Is(err, service.ErrImageTooSmall),
			errors.Is(err, service.ErrInvalidImageData):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "file", Message: err.Error()},
			})
		default:
			log.Error().Err(err).Str("banner_id", bannerID).Msg("Failed to set banner icon")
			return NewInternalError(c, "Failed to set banner icon")
		}
	}

	log.Info().
		Int32("workspace_id", workspaceID).
		Str("banner_id", bannerID).
		Msg("Banner icon updated")

	return c.JSON(http.StatusOK, toBannerResponse(banner))
}

// uploadContentType returns the part's declared media type, falling back to
// the filename extension when the client sent none or a generic one.
func uploadContentType(file *multipart.FileHeader) string {
	ct, _, _ := strings.Cut(file.Header.Get("Content-Type"), ";")
	ct = strings.ToLower(strings.TrimSpace(ct))
	if ct == "" || ct == "application/octet-stream" {
		return service.GetContentType(file.Filename)
	}
	return ct
}
