// Package window hosts the switch in a desktop window driven by Ebitengine.
package window

import (
	"image"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/config"
	"github.com/phinze/slideswitch/internal/toggle"
)

// margin is the empty border around the switch, in widget pixels.
const margin = 16

var colorBackdrop = color.RGBA{30, 30, 30, 255}

// Input provides the pointer state the game samples each frame.
type Input interface {
	Pointer() (x, y int, pressed bool)
	IsFocused() bool
}

// ebitenInput reads the mouse, or the first touch when one is active.
type ebitenInput struct {
	touchIDs  []ebiten.TouchID
	lastTouch image.Point
	touching  bool
}

func (e *ebitenInput) Pointer() (int, int, bool) {
	e.touchIDs = ebiten.AppendTouchIDs(e.touchIDs[:0])
	if len(e.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(e.touchIDs[0])
		e.lastTouch = image.Pt(x, y)
		e.touching = true
		return x, y, true
	}
	if e.touching {
		// Release the touch where it was last seen.
		e.touching = false
		return e.lastTouch.X, e.lastTouch.Y, false
	}
	x, y := ebiten.CursorPosition()
	return x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
}

func (e *ebitenInput) IsFocused() bool {
	return ebiten.IsFocused()
}

// Game implements ebiten.Game for a single switch.
type Game struct {
	sw      *toggle.Switch
	tracker *Tracker
	input   Input

	scale  float64
	size   image.Point
	origin image.Point

	dirty bool
	frame *image.RGBA
	img   *ebiten.Image
}

// NewGame builds the switch from the asset pair and lays it out using the
// window and gesture settings in cfg.
func NewGame(cfg *config.Config, pair assets.Pair, onChange func(on bool)) (*Game, error) {
	g := &Game{
		input: &ebitenInput{},
		scale: cfg.Window.Scale,
	}

	sw, err := toggle.New(pair.Background, pair.Thumb, toggle.Options{
		Repaint:  g.markDirty,
		OnChange: onChange,
	})
	if err != nil {
		return nil, err
	}

	g.sw = sw
	g.size = sw.MeasuredSize()
	g.origin = image.Pt(g.toScreen(margin), g.toScreen(margin))
	g.frame = image.NewRGBA(image.Rectangle{Max: g.size})
	g.dirty = true
	g.tracker = NewTracker(sw, g.origin, g.size, g.scale, cfg.Gesture.TapSlop, cfg.Gesture.TapTimeout.Std())
	return g, nil
}

// Switch returns the hosted switch.
func (g *Game) Switch() *toggle.Switch {
	return g.sw
}

func (g *Game) toScreen(v int) int {
	return int(math.Round(float64(v) * g.scale))
}

func (g *Game) markDirty() {
	g.dirty = true
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.poll()
	return nil
}

// poll feeds one frame of pointer state to the tracker.
func (g *Game) poll() {
	x, y, pressed := g.input.Pointer()
	g.tracker.Sample(x, y, pressed, g.input.IsFocused())
}

// renderFrame redraws the switch into the cached buffer if a repaint was
// requested since the last frame. It returns nil when nothing changed.
func (g *Game) renderFrame() *image.RGBA {
	if !g.dirty {
		return nil
	}
	g.dirty = false
	g.sw.Draw(g.frame)
	return g.frame
}

func (g *Game) Draw(screen *ebiten.Image) {
	if frame := g.renderFrame(); frame != nil {
		if g.img == nil {
			g.img = ebiten.NewImage(g.size.X, g.size.Y)
		}
		g.img.WritePixels(frame.Pix)
	}

	screen.Fill(colorBackdrop)
	if g.img != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(g.scale, g.scale)
		op.GeoM.Translate(float64(g.origin.X), float64(g.origin.Y))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(g.img, op)
	}

	label := "OFF"
	if g.sw.IsOn() {
		label = "ON"
	}
	ebitenutil.DebugPrintAt(screen, label, 4, 0)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.toScreen(g.size.X + 2*margin), g.toScreen(g.size.Y + 2*margin)
}

// Run opens a window showing the switch and blocks until it is closed.
// This MUST be called from the main goroutine.
func Run(cfg *config.Config, pair assets.Pair) error {
	g, err := NewGame(cfg, pair, func(on bool) {
		log.Printf("switch: now %v", on)
	})
	if err != nil {
		return err
	}

	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	log.Printf("Window opened (%dx%d switch at scale %.1f)", g.size.X, g.size.Y, g.scale)
	return ebiten.RunGame(g)
}
