package domain

import "errors"

// Domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInternalError        = errors.New("internal error")
	ErrUserNotFound         = errors.New("user not found")
	ErrWorkspaceNotFound    = errors.New("workspace not found")
	ErrAccountNotFound      = errors.New("account not found")
	ErrSettingsNotFound     = errors.New("settings not found")
	ErrBannerNotFound       = errors.New("banner not found")
	ErrBannerNotDismissable = errors.New("banner cannot be dismissed")
	ErrInvalidTimeRange     = errors.New("invalid time range")
	ErrInvalidCounterValue  = errors.New("invalid counter value currency")
	ErrInvalidOrdering      = errors.New("invalid account ordering")
)
