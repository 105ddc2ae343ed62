package stripswitch

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Colors
var (
	colorBackground = color.RGBA{25, 25, 25, 255}
	colorOn         = color.RGBA{52, 199, 89, 255}
	colorOff        = color.RGBA{160, 160, 160, 255}
)

// RenderStrip draws the switch and its state caption into the module's region.
func (m *Module) RenderStrip() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sw == nil {
		return nil
	}

	img := image.NewRGBA(m.region)
	draw.Draw(img, m.region, &image.Uniform{colorBackground}, image.Point{}, draw.Src)

	m.sw.Draw(img.SubImage(m.bounds).(*image.RGBA))

	on := m.sw.IsOn()
	captionColor := colorOff
	if on {
		captionColor = colorOn
	}
	baseline := m.bounds.Min.Y + m.bounds.Dy()/2 + basicfont.Face7x13.Ascent/2
	drawText(img, stateLabel(on), m.bounds.Max.X+padding, baseline, basicfont.Face7x13, captionColor)

	return img
}

func stateLabel(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// drawText draws text at the given position.
func drawText(img *image.RGBA, text string, x, y int, face font.Face, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
