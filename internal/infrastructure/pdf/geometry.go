package pdf

import (
	"fmt"

	"docsign/internal/domain/entity"
)

// Rect is an absolute rectangle in PDF points with the origin at the page's
// bottom-left corner.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// BlockRect converts a signature block's percentage coordinates into absolute
// PDF points for a page of the given physical size. The block's Y percentage
// is measured from the page top (screen convention), so the vertical axis is
// flipped: the returned Y is the distance from the page bottom to the
// rectangle's lower edge.
//
// Returns ErrInvalidGeometry when the transform produces a rectangle outside
// the page or with a non-positive extent, e.g. a block whose top edge plus
// height exceeds 100%.
func BlockRect(block entity.SignatureBlock, pageWidth, pageHeight float64) (Rect, error) {
	x := pageWidth * block.XPercent / 100
	y := pageHeight * (100 - block.YPercent - block.HeightPercent) / 100
	width := pageWidth * block.WidthPercent / 100
	height := pageHeight * block.HeightPercent / 100

	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return Rect{}, fmt.Errorf("%w: x=%.2f y=%.2f width=%.2f height=%.2f",
			ErrInvalidGeometry, x, y, width, height)
	}

	return Rect{X: x, Y: y, Width: width, Height: height}, nil
}
