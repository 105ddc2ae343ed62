// Package assets loads the background and thumb images for the switch from
// raster or SVG files, with embedded defaults.
package assets

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/phinze/slideswitch/internal/toggle"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// DefaultHeight is the pixel height SVG assets are rasterised at when no
// height is configured.
const DefaultHeight = 56

//go:embed svg/track.svg
var trackSVG []byte

//go:embed svg/thumb.svg
var thumbSVG []byte

// Pair holds the two images a switch is built from.
type Pair struct {
	Background image.Image
	Thumb      image.Image
}

// Default returns the embedded track and knob rasterised at the given height.
func Default(height int) (Pair, error) {
	bg, err := RasterizeSVG(bytes.NewReader(trackSVG), height)
	if err != nil {
		return Pair{}, fmt.Errorf("default background: %w", err)
	}
	thumb, err := RasterizeSVG(bytes.NewReader(thumbSVG), height)
	if err != nil {
		return Pair{}, fmt.Errorf("default thumb: %w", err)
	}
	return Pair{Background: bg, Thumb: thumb}, nil
}

// LoadPair loads both assets. Empty paths fall back to the embedded defaults;
// the two paths must be either both set or both empty.
func LoadPair(backgroundPath, thumbPath string, height int) (Pair, error) {
	if backgroundPath == "" && thumbPath == "" {
		return Default(height)
	}
	if backgroundPath == "" || thumbPath == "" {
		return Pair{}, fmt.Errorf("both background and thumb paths are required: %w", toggle.ErrAssetMissing)
	}

	bg, err := Load(backgroundPath, height)
	if err != nil {
		return Pair{}, err
	}
	thumb, err := Load(thumbPath, height)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Background: bg, Thumb: thumb}, nil
}

// Load decodes an image file. Raster formats keep their natural size; SVG
// files are rasterised at the given height. All failures wrap
// toggle.ErrAssetMissing.
func Load(path string, height int) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w: %w", path, toggle.ErrAssetMissing, err)
	}
	defer f.Close()

	var img image.Image
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		img, err = RasterizeSVG(f, height)
	} else {
		img, _, err = image.Decode(f)
	}
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w: %w", path, toggle.ErrAssetMissing, err)
	}

	if img.Bounds().Empty() {
		return nil, fmt.Errorf("loading %s: zero-sized image: %w", path, toggle.ErrAssetMissing)
	}
	return img, nil
}

// RasterizeSVG renders an SVG document to an RGBA image of the given height,
// keeping the aspect ratio of its view box.
func RasterizeSVG(r io.Reader, height int) (image.Image, error) {
	if height <= 0 {
		height = DefaultHeight
	}

	icon, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("svg has empty view box: %w", toggle.ErrAssetMissing)
	}

	width := int(math.Round(float64(height) * icon.ViewBox.W / icon.ViewBox.H))
	if width <= 0 {
		return nil, fmt.Errorf("svg rasterises to zero width: %w", toggle.ErrAssetMissing)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)

	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}
