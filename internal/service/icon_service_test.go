package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/dafibh/fortuna/portfolio-backend/internal/testutil"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestImage creates a test image of the specified size and format
func createTestImage(width, height int, format string) ([]byte, string) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 0, A: 255})
		}
	}

	var buf bytes.Buffer
	var filename string

	switch format {
	case "png":
		png.Encode(&buf, img)
		filename = "icon.png"
	default:
		jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
		filename = "icon.jpg"
	}

	return buf.Bytes(), filename
}

func TestIconService_ValidateAndDecode(t *testing.T) {
	svc := NewIconService(nil, 0)

	validJPEG, jpegName := createTestImage(64, 64, "jpeg")
	validPNG, pngName := createTestImage(40, 40, "png")
	small, smallName := createTestImage(31, 64, "jpeg")

	tests := []struct {
		name     string
		data     []byte
		filename string
		wantErr  error
	}{
		{"valid jpeg", validJPEG, jpegName, nil},
		{"valid png", validPNG, pngName, nil},
		{"too large", make([]byte, MaxIconSize+1), "icon.jpg", ErrImageTooLarge},
		{"gif extension", validJPEG, "icon.gif", ErrInvalidFormat},
		{"too small", small, smallName, ErrImageTooSmall},
		{"not an image", []byte("not an image"), "icon.png", ErrInvalidImageData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.validateAndDecode(tt.data, tt.filename)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIconService_ProcessAndUpload(t *testing.T) {
	store := testutil.NewMockObjectStore()
	svc := NewIconService(store, 0)
	data, filename := createTestImage(256, 128, "png")

	path, err := svc.ProcessAndUpload(context.Background(), "promoNanoX", data, filename)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "banners/promoNanoX/"))
	assert.True(t, strings.HasSuffix(path, ".png"))

	stored, ok := store.Objects[path]
	require.True(t, ok)
	img, err := imaging.Decode(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, IconWidth, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestIconService_Disabled(t *testing.T) {
	svc := NewIconService(nil, 0)
	data, filename := createTestImage(64, 64, "png")

	assert.False(t, svc.IsEnabled())

	_, err := svc.ProcessAndUpload(context.Background(), "promoNanoX", data, filename)
	assert.ErrorIs(t, err, ErrImageStorageNotConfigured)

	url, err := svc.PresignedURL(context.Background(), "banners/promoNanoX/a.png")
	assert.NoError(t, err)
	assert.Empty(t, url)
}

func TestIconService_PresignedURL(t *testing.T) {
	svc := NewIconService(testutil.NewMockObjectStore(), 0)

	url, err := svc.PresignedURL(context.Background(), "banners/a/b.png")
	require.NoError(t, err)
	assert.Equal(t, "https://icons.test/banners/a/b.png?expires=3600", url)

	url, err = svc.PresignedURL(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"test.jpg", "image/jpeg"},
		{"test.JPEG", "image/jpeg"},
		{"test.png", "image/png"},
		{"test.webp", "image/webp"},
		{"test.gif", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if ct := GetContentType(tt.filename); ct != tt.expected {
				t.Errorf("GetContentType(%s) = %s, expected %s", tt.filename, ct, tt.expected)
			}
		})
	}
}

func TestIsValidImageFormat(t *testing.T) {
	assert.True(t, IsValidImageFormat("image/webp"))
	assert.False(t, IsValidImageFormat("image/gif"))
}
