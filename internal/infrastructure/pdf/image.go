package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// DecodeSignatureImage turns a captured signature string into raw image
// bytes. The input is either plain base64 or a data URL; anything up to and
// including the first comma is treated as the data URL prefix and stripped.
// Pixel content is not validated here, the overlay writer rejects bytes that
// do not parse as a supported raster format.
func DecodeSignatureImage(encoded string) ([]byte, error) {
	payload := encoded
	if i := strings.Index(payload, ","); i >= 0 {
		payload = payload[i+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImageData, err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyImageData
	}

	return raw, nil
}

// imageSize probes the natural pixel dimensions of a PNG or JPEG payload.
func imageSize(raw []byte) (int, int, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrUnsupportedImageFormat, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("%w: degenerate %dx%d image", ErrUnsupportedImageFormat, cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}
