// Package emulator provides a GUI-based Stream Deck Plus touch strip emulator.
package emulator

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phinze/slideswitch/internal/device"
)

// Layout constants
const (
	marginX      = 20
	marginY      = 20
	headerHeight = 30
	footerHeight = 30

	// Strip dimensions (native resolution of the Stream Deck Plus)
	stripWidth  = 800
	stripHeight = 100

	windowWidth  = 2*marginX + stripWidth
	windowHeight = headerHeight + marginY + stripHeight + footerHeight
	stripStartX  = marginX
	stripStartY  = headerHeight + marginY
)

// Config holds the gesture thresholds the emulator uses to classify drags.
type Config struct {
	// TapSlop is the travel, in pixels, above which a press becomes a swipe.
	TapSlop int
	// LongPress is the hold time from which a tap is reported as long.
	LongPress time.Duration
}

// Emulator implements the device.Device interface using Ebitengine for GUI rendering.
type Emulator struct {
	mu sync.RWMutex

	cfg Config

	// State
	open       bool
	brightness byte
	stripImage *ebiten.Image
	pending    *image.RGBA // set by SetTouchStripImage, uploaded on the game goroutine

	// Handlers
	stripTouchHandlers []device.TouchStripTouchHandler
	stripSwipeHandlers []device.TouchStripSwipeHandler

	// Ebitengine state
	stopCh     chan struct{}
	errorCh    chan error
	listenDone chan struct{}

	// Input state (managed by game loop)
	dragStart     image.Point
	dragStartTime time.Time
	dragging      bool
}

// New creates a new emulator instance.
func New(cfg Config) *Emulator {
	return &Emulator{
		cfg:        cfg,
		brightness: 80,
		stopCh:     make(chan struct{}),
		listenDone: make(chan struct{}),
	}
}

// Open initializes the emulator.
func (e *Emulator) Open() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.open {
		return fmt.Errorf("emulator: device is already open")
	}

	e.open = true
	e.stopCh = make(chan struct{})
	return nil
}

// Close shuts down the emulator.
func (e *Emulator) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open {
		return fmt.Errorf("emulator: device is not open")
	}

	e.open = false
	close(e.stopCh)
	return nil
}

// IsOpen returns whether the emulator is open.
func (e *Emulator) IsOpen() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.open
}

// GetModelName returns the emulated model name.
func (e *Emulator) GetModelName() string {
	return "Stream Deck Plus (Emulator)"
}

// GetTouchStripSupported returns true as the emulated device supports touch strip.
func (e *Emulator) GetTouchStripSupported() bool {
	return true
}

// GetTouchStripImageRectangle returns the touch strip dimensions.
func (e *Emulator) GetTouchStripImageRectangle() (image.Rectangle, error) {
	return image.Rect(0, 0, stripWidth, stripHeight), nil
}

// SetBrightness sets the display brightness.
func (e *Emulator) SetBrightness(perc byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.brightness = perc
	return nil
}

// SetTouchStripImage sets the touch strip image.
func (e *Emulator) SetTouchStripImage(img image.Image) error {
	rgba := image.NewRGBA(image.Rect(0, 0, stripWidth, stripHeight))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	e.mu.Lock()
	e.pending = rgba
	e.mu.Unlock()
	return nil
}

// AddTouchStripTouchHandler registers a touch strip touch handler.
func (e *Emulator) AddTouchStripTouchHandler(fn device.TouchStripTouchHandler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stripTouchHandlers = append(e.stripTouchHandlers, fn)
	return nil
}

// AddTouchStripSwipeHandler registers a touch strip swipe handler.
func (e *Emulator) AddTouchStripSwipeHandler(fn device.TouchStripSwipeHandler) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stripSwipeHandlers = append(e.stripSwipeHandlers, fn)
	return nil
}

// Listen blocks until the emulator window is closed.
// The actual event loop runs via RunGUI, which must be called from main.
func (e *Emulator) Listen(errCh chan error) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return fmt.Errorf("emulator: device is not open")
	}
	e.errorCh = errCh
	e.mu.Unlock()

	<-e.listenDone
	return nil
}

// RunGUI starts the Ebitengine GUI loop. This MUST be called from the main goroutine
// on macOS due to Cocoa threading requirements. This method blocks until the window is closed.
func (e *Emulator) RunGUI() error {
	if !e.IsOpen() {
		return fmt.Errorf("emulator: device is not open")
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Stream Deck Plus Emulator")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	err := ebiten.RunGame(&emulatorGame{emu: e})

	// Signal Listen() to unblock
	close(e.listenDone)
	return err
}

// emulatorGame implements ebiten.Game for the emulator.
type emulatorGame struct {
	emu *Emulator
}

func (g *emulatorGame) Update() error {
	select {
	case <-g.emu.stopCh:
		return ebiten.Termination
	default:
	}

	g.uploadStrip()
	g.handleInput()
	return nil
}

// uploadStrip moves the latest strip image onto the GPU. Ebiten images are
// only touched from the game goroutine.
func (g *emulatorGame) uploadStrip() {
	g.emu.mu.Lock()
	pending := g.emu.pending
	g.emu.pending = nil
	g.emu.mu.Unlock()

	if pending == nil {
		return
	}
	if g.emu.stripImage == nil {
		g.emu.stripImage = ebiten.NewImage(stripWidth, stripHeight)
	}
	g.emu.stripImage.WritePixels(pending.Pix)
}

func (g *emulatorGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{30, 30, 30, 255})

	g.emu.mu.RLock()
	brightness := float32(g.emu.brightness) / 100
	g.emu.mu.RUnlock()

	ebitenutil.DebugPrintAt(screen, "Stream Deck Plus Emulator", windowWidth/2-75, 8)

	drawRect(screen, stripStartX-2, stripStartY-2, stripWidth+4, stripHeight+4, color.RGBA{60, 60, 60, 255})
	if g.emu.stripImage != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(stripStartX, stripStartY)
		op.ColorScale.Scale(brightness, brightness, brightness, 1)
		screen.DrawImage(g.emu.stripImage, op)
	}

	ebitenutil.DebugPrintAt(screen, "Click to tap | hold for long tap | drag to swipe", 10, windowHeight-18)
}

func (g *emulatorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, windowHeight
}

func (g *emulatorGame) handleInput() {
	mx, my := ebiten.CursorPosition()
	local := image.Pt(mx-stripStartX, my-stripStartY)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && local.In(image.Rect(0, 0, stripWidth, stripHeight)) {
		g.emu.dragging = true
		g.emu.dragStart = local
		g.emu.dragStartTime = time.Now()
	}

	if g.emu.dragging && !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.emu.dragging = false
		end := clampToStrip(local)
		g.emu.dispatch(classify(g.emu.dragStart, end, time.Since(g.emu.dragStartTime), g.emu.cfg))
	}
}

// gesture is a classified press/release pair.
type gesture struct {
	swipe     bool
	touchType device.TouchStripTouchType
	start     image.Point
	end       image.Point
}

// classify turns a press and release into a tap, long tap or swipe the way
// the hardware reports them.
func classify(start, end image.Point, held time.Duration, cfg Config) gesture {
	d := end.Sub(start)
	if d.X*d.X+d.Y*d.Y > cfg.TapSlop*cfg.TapSlop {
		return gesture{swipe: true, start: start, end: end}
	}

	touchType := device.TOUCH_STRIP_TOUCH_TYPE_SHORT
	if held >= cfg.LongPress {
		touchType = device.TOUCH_STRIP_TOUCH_TYPE_LONG
	}
	return gesture{touchType: touchType, start: start, end: start}
}

func clampToStrip(p image.Point) image.Point {
	p.X = min(max(p.X, 0), stripWidth-1)
	p.Y = min(max(p.Y, 0), stripHeight-1)
	return p
}

// dispatch fires the registered handlers for a gesture on the calling
// goroutine, so handlers see gestures in delivery order.
func (e *Emulator) dispatch(gs gesture) {
	e.mu.RLock()
	touchHandlers := e.stripTouchHandlers
	swipeHandlers := e.stripSwipeHandlers
	e.mu.RUnlock()

	if gs.swipe {
		for _, h := range swipeHandlers {
			e.report(h(e, gs.start, gs.end))
		}
		return
	}
	for _, h := range touchHandlers {
		e.report(h(e, gs.touchType, gs.start))
	}
}

func (e *Emulator) report(err error) {
	if err == nil {
		return
	}
	e.mu.RLock()
	errCh := e.errorCh
	e.mu.RUnlock()

	if errCh == nil {
		log.Printf("emulator: handler error: %v", err)
		return
	}
	select {
	case errCh <- err:
	default:
	}
}

// Helper function to draw a filled rectangle
func drawRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	rect := ebiten.NewImage(w, h)
	rect.Fill(c)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(rect, op)
}
