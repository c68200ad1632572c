package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"log"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	// Longest edge of a stored preview
	maxPreviewDim = 1200
	// Decoded upload limit
	maxPreviewBytes = 5 << 20
	// Largest canvas decoded, checked from the header before decoding pixels
	maxPreviewPixels = 8000 * 8000
)

// ErrInvalidImageData is returned for uploads that are not a base64 image data URL
var ErrInvalidImageData = errors.New("invalid image data")

// DecodeDataURL extracts the bytes of a "data:image/<type>;base64,<payload>" URL
func DecodeDataURL(dataURL string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimSpace(dataURL), ";base64,")
	if !ok || !strings.HasPrefix(header, "data:image/") {
		return nil, fmt.Errorf("%w: expected a base64 image data URL", ErrInvalidImageData)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxPreviewBytes+3 {
		return nil, fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidImageData, maxPreviewBytes)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImageData, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidImageData)
	}
	return data, nil
}

// OptimizePreview decodes an uploaded preview, bounds it to maxPreviewDim and re-encodes it as PNG
func OptimizePreview(imageData []byte) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image header: %v", ErrInvalidImageData, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxPreviewPixels {
		log.Printf("❌ Preview rejected: %s canvas %dx%d", format, cfg.Width, cfg.Height)
		return nil, fmt.Errorf("%w: image is %dx%d, limit is %d pixels", ErrInvalidImageData, cfg.Width, cfg.Height, maxPreviewPixels)
	}

	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", ErrInvalidImageData, err)
	}

	bounds := img.Bounds()
	log.Printf("📸 Preview decoded: bounds=%v", bounds)

	var out image.Image = img
	if bounds.Dx() > maxPreviewDim || bounds.Dy() > maxPreviewDim {
		out = imaging.Fit(img, maxPreviewDim, maxPreviewDim, imaging.Lanczos)
		log.Printf("🔄 Resizing preview: %dx%d -> %dx%d", bounds.Dx(), bounds.Dy(), out.Bounds().Dx(), out.Bounds().Dy())
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode to PNG: %w", err)
	}

	log.Printf("✓ Preview optimized: output_size=%d bytes", buf.Len())
	return buf.Bytes(), nil
}
