package domain

import "context"

type BannerStatus string

const (
	BannerStatusDark  BannerStatus = "dark"
	BannerStatusInfo  BannerStatus = "info"
	BannerStatusAlert BannerStatus = "alert"
)

// BannerContent is what a client needs to draw a banner. Message keys are
// translated client side.
type BannerContent struct {
	MessageKey   string       `json:"messageKey"`
	Status       BannerStatus `json:"status"`
	LinkLabelKey string       `json:"linkLabelKey,omitempty"`
	LinkURL      string       `json:"linkUrl,omitempty"`
	IconPath     string       `json:"-"`
	IconURL      string       `json:"iconUrl,omitempty"`
}

// Banner is a dismissible strip at the top of the dashboard. Lower Priority
// wins; Dismissed is resolved per workspace.
type Banner struct {
	ID          string        `json:"id"`
	Priority    int           `json:"priority"`
	Dismissable bool          `json:"dismissable"`
	Dismissed   bool          `json:"dismissed"`
	Content     BannerContent `json:"content"`
}

// BannerRepository holds the banner catalog
type BannerRepository interface {
	ListActive(ctx context.Context) ([]Banner, error)
	GetByID(ctx context.Context, id string) (*Banner, error)
	UpdateIconPath(ctx context.Context, id string, iconPath string) error
}
