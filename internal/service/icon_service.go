package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/dafibh/fortuna/portfolio-backend/internal/repository/storage"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	MaxIconSize   = 2 * 1024 * 1024 // 2MB
	MinIconWidth  = 32
	MinIconHeight = 32
	IconWidth     = 64
)

var (
	ErrImageTooLarge             = errors.New("file too large. Maximum size is 2MB")
	ErrInvalidFormat             = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrImageTooSmall             = errors.New("image too small. Minimum 32x32 pixels")
	ErrInvalidImageData          = errors.New("invalid image data")
	ErrImageStorageNotConfigured = errors.New("image storage not configured")
)

// AllowedImageFormats contains the supported image MIME types
var AllowedImageFormats = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// AllowedExtensions maps extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// IconService validates, resizes and stores banner icons
type IconService struct {
	storage       storage.ObjectStore
	presignExpiry time.Duration
}

// NewIconService creates a new IconService. A nil store disables uploads.
func NewIconService(store storage.ObjectStore, presignExpiry time.Duration) *IconService {
	if presignExpiry <= 0 {
		presignExpiry = time.Hour
	}
	return &IconService{storage: store, presignExpiry: presignExpiry}
}

// IsEnabled indicates whether uploads are supported (storage configured).
func (s *IconService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

func (s *IconService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxIconSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidFormat
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinIconWidth || bounds.Dy() < MinIconHeight {
		return nil, ErrImageTooSmall
	}

	return img, nil
}

// ProcessAndUpload resizes an icon to IconWidth, encodes it as PNG and stores
// it under banners/<bannerID>/. It returns the object path.
func (s *IconService) ProcessAndUpload(ctx context.Context, bannerID string, data []byte, filename string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrImageStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return "", err
	}

	resized := imaging.Resize(img, IconWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return "", fmt.Errorf("failed to encode icon: %w", err)
	}

	objectPath := fmt.Sprintf("banners/%s/%s.png", bannerID, uuid.New().String())
	path, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/png", int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("failed to upload icon: %w", err)
	}
	return path, nil
}

// Delete removes a stored icon; empty paths are ignored
func (s *IconService) Delete(ctx context.Context, objectPath string) error {
	if objectPath == "" {
		return nil
	}
	if !s.IsEnabled() {
		return ErrImageStorageNotConfigured
	}
	return s.storage.Delete(ctx, objectPath)
}

// PresignedURL returns a temporary URL for a stored icon. Without storage or
// path it returns an empty string.
func (s *IconService) PresignedURL(ctx context.Context, objectPath string) (string, error) {
	if objectPath == "" || !s.IsEnabled() {
		return "", nil
	}
	return s.storage.GeneratePresignedURL(ctx, objectPath, s.presignExpiry)
}

// GetContentType returns the content type for a file extension
func GetContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// IsValidImageFormat checks if a content type is a valid image format
func IsValidImageFormat(contentType string) bool {
	return AllowedImageFormats[contentType]
}
