package toggle

import (
	"image"

	"golang.org/x/image/draw"
)

// Draw composes the switch onto dst with its top-left corner at
// dst.Bounds().Min: the background first, then the thumb at the current
// offset. Only the offset is consulted, so equal offsets give equal pixels.
func (s *Switch) Draw(dst draw.Image) {
	origin := dst.Bounds().Min

	bgRect := image.Rectangle{Min: origin, Max: origin.Add(s.geom.MeasuredSize())}
	s.sampler.Scale(dst, bgRect, s.background, s.background.Bounds(), draw.Src, nil)

	thumbRect := s.geom.ThumbRect(s.offset).Add(origin)
	s.sampler.Scale(dst, thumbRect, s.thumb, s.thumb.Bounds(), draw.Over, nil)
}

// Render draws the switch into a new image of its measured size.
func (s *Switch) Render() *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: s.geom.MeasuredSize()})
	s.Draw(img)
	return img
}
