package pdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.White)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeSignatureImagePlainBase64(t *testing.T) {
	raw := pngBytes(t, 4, 4)
	encoded := base64.StdEncoding.EncodeToString(raw)

	decoded, err := DecodeSignatureImage(encoded)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestDecodeSignatureImageDataURL(t *testing.T) {
	raw := pngBytes(t, 4, 4)
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	decoded, err := DecodeSignatureImage(encoded)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestDecodeSignatureImageTrimsWhitespace(t *testing.T) {
	raw := pngBytes(t, 4, 4)
	encoded := "  " + base64.StdEncoding.EncodeToString(raw) + "\n"

	decoded, err := DecodeSignatureImage(encoded)
	require.NoError(t, err)
	require.Equal(t, raw, decoded)
}

func TestDecodeSignatureImageMalformed(t *testing.T) {
	_, err := DecodeSignatureImage("data:image/png;base64,!!!not-base64!!!")
	require.True(t, errors.Is(err, ErrMalformedImageData))
}

func TestDecodeSignatureImageEmpty(t *testing.T) {
	for _, input := range []string{"", "data:image/png;base64,"} {
		_, err := DecodeSignatureImage(input)
		require.True(t, errors.Is(err, ErrEmptyImageData), "input %q", input)
	}
}

func TestImageSize(t *testing.T) {
	width, height, err := imageSize(pngBytes(t, 120, 48))
	require.NoError(t, err)
	require.Equal(t, 120, width)
	require.Equal(t, 48, height)
}

func TestImageSizeUnsupported(t *testing.T) {
	_, _, err := imageSize([]byte("this is not an image"))
	require.True(t, errors.Is(err, ErrUnsupportedImageFormat))
}
