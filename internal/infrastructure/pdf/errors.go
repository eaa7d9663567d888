package pdf

import (
	"errors"
	"fmt"
)

// Input errors. Callers match with errors.Is and map these to 4xx responses.
var (
	ErrPdfNotFound            = errors.New("pdf file not found")
	ErrPageOutOfRange         = errors.New("page index out of range")
	ErrInvalidGeometry        = errors.New("invalid signature block geometry")
	ErrMalformedImageData     = errors.New("malformed base64 image data")
	ErrEmptyImageData         = errors.New("signature image data is empty")
	ErrUnsupportedImageFormat = errors.New("unsupported image format")
	ErrFooterGeneration       = errors.New("failed to generate footer pdf")
)

// ProcessingError wraps failures inside the PDF library or the filesystem.
// These are system-side and map to 5xx responses.
type ProcessingError struct {
	Op  string
	Err error
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("pdf processing failed during %s: %v", e.Op, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err is caller-fixable rather than a
// system-side processing failure.
func IsInputError(err error) bool {
	for _, sentinel := range []error{
		ErrPdfNotFound,
		ErrPageOutOfRange,
		ErrInvalidGeometry,
		ErrMalformedImageData,
		ErrEmptyImageData,
		ErrUnsupportedImageFormat,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
