// Package toggle implements a two-image sliding on/off switch: the geometry
// derived from its assets, the pointer-driven state machine and the render
// pass that composes background and thumb.
package toggle

import (
	"errors"
	"fmt"
	"image"
)

var (
	// ErrAssetMissing indicates an asset could not be decoded or is zero-sized.
	ErrAssetMissing = errors.New("toggle: asset missing")

	// ErrDimensionInvalid indicates the thumb does not fit inside the background.
	ErrDimensionInvalid = errors.New("toggle: thumb larger than background")
)

// Geometry holds the asset dimensions and the legal thumb offset range.
// It is immutable once created.
type Geometry struct {
	background image.Point
	thumb      image.Point
	maxOffset  int
}

// NewGeometry derives the geometry from the background and thumb sizes.
func NewGeometry(background, thumb image.Point) (Geometry, error) {
	if background.X <= 0 || background.Y <= 0 {
		return Geometry{}, fmt.Errorf("background is %dx%d: %w", background.X, background.Y, ErrAssetMissing)
	}
	if thumb.X <= 0 || thumb.Y <= 0 {
		return Geometry{}, fmt.Errorf("thumb is %dx%d: %w", thumb.X, thumb.Y, ErrAssetMissing)
	}
	if thumb.X > background.X || thumb.Y > background.Y {
		return Geometry{}, fmt.Errorf("thumb %dx%d, background %dx%d: %w",
			thumb.X, thumb.Y, background.X, background.Y, ErrDimensionInvalid)
	}

	return Geometry{
		background: background,
		thumb:      thumb,
		maxOffset:  background.X - thumb.X,
	}, nil
}

// MeasuredSize returns the intrinsic size reported to hosts, which is the
// background size.
func (g Geometry) MeasuredSize() image.Point {
	return g.background
}

// ThumbSize returns the thumb's pixel dimensions.
func (g Geometry) ThumbSize() image.Point {
	return g.thumb
}

// MaxOffset returns the rightmost legal thumb offset.
func (g Geometry) MaxOffset() int {
	return g.maxOffset
}

// Clamp limits x to [0, MaxOffset].
func (g Geometry) Clamp(x int) int {
	return min(max(x, 0), g.maxOffset)
}

// ThumbRect returns where the thumb lands for the given offset, relative to
// the widget's top-left corner.
func (g Geometry) ThumbRect(offset int) image.Rectangle {
	x := g.Clamp(offset)
	return image.Rect(x, 0, x+g.thumb.X, g.thumb.Y)
}
