// Package coordinator manages module lifecycle, routes touch strip events to
// modules and composites their output onto the device.
package coordinator

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"sync"
	"time"

	"github.com/phinze/slideswitch/internal/device"
	"github.com/phinze/slideswitch/internal/module"
)

// refreshInterval is how often the strip is redrawn without a repaint request,
// to recover from devices that drop frames.
const refreshInterval = 5 * time.Second

// Coordinator manages the lifecycle of modules and routes events to them.
type Coordinator struct {
	device  device.Device
	modules []module.Module

	// Resource tracking
	moduleResources map[module.Module]module.Resources

	// Track modules that failed to initialize
	failedModules map[module.Module]bool

	// Strip compositing
	stripRect image.Rectangle
	repaintCh chan struct{}

	// eventMu serializes event delivery so modules see one event at a time,
	// in arrival order.
	eventMu sync.Mutex

	// Lifecycle
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu sync.RWMutex
}

// New creates a new Coordinator for the given device.
func New(dev device.Device) *Coordinator {
	return &Coordinator{
		device:          dev,
		modules:         make([]module.Module, 0),
		moduleResources: make(map[module.Module]module.Resources),
		failedModules:   make(map[module.Module]bool),
		repaintCh:       make(chan struct{}, 1),
	}
}

// RegisterModule registers a module with its allocated strip region.
// Must be called before Start.
func (c *Coordinator) RegisterModule(m module.Module, res module.Resources) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, other := range c.modules {
		if other.ID() == m.ID() {
			return fmt.Errorf("coordinator: module %q already registered", m.ID())
		}
		if res.StripRect.Overlaps(c.moduleResources[other].StripRect) {
			return fmt.Errorf("coordinator: module %q strip region %v overlaps %q", m.ID(), res.StripRect, other.ID())
		}
	}

	res.Repaint = c.requestRepaint
	c.moduleResources[m] = res
	c.modules = append(c.modules, m)
	return nil
}

// Start initializes all modules and runs the event/render loop until ctx is
// cancelled or the device stops listening.
func (c *Coordinator) Start(ctx context.Context) error {
	stripRect, err := device.StripRect(c.device)
	if err != nil {
		return fmt.Errorf("coordinator: %s: %w", c.device.GetModelName(), err)
	}

	c.mu.Lock()
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.stripRect = stripRect
	c.mu.Unlock()

	// Initialize all modules (continue on error, just skip failed modules)
	for _, m := range c.modules {
		if err := m.Init(c.ctx, c.resourcesForModule(m)); err != nil {
			log.Printf("Module %s failed to initialize: %v (skipping)", m.ID(), err)
			c.mu.Lock()
			c.failedModules[m] = true
			c.mu.Unlock()
		}
	}

	if err := c.setupEventHandlers(); err != nil {
		return err
	}

	// Start device listener
	listenErr := make(chan error, 1)
	go func() {
		if err := c.device.Listen(nil); err != nil {
			listenErr <- err
		}
		close(listenErr)
	}()

	c.wg.Add(1)
	go c.renderLoop()

	select {
	case <-c.ctx.Done():
		return nil
	case err := <-listenErr:
		// Device disconnected or listener error
		return err
	}
}

// Stop gracefully shuts down all modules.
func (c *Coordinator) Stop() error {
	c.mu.RLock()
	cancel := c.cancel
	c.mu.RUnlock()
	if cancel != nil {
		cancel()
	}

	for _, m := range c.modules {
		if err := m.Stop(); err != nil {
			log.Printf("Module %s failed to stop: %v", m.ID(), err)
		}
	}

	c.wg.Wait()
	return nil
}

// resourcesForModule returns the stored resources for a module.
func (c *Coordinator) resourcesForModule(m module.Module) module.Resources {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.moduleResources[m]
}

func (c *Coordinator) isFailed(m module.Module) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.failedModules[m]
}

// setupEventHandlers registers device event handlers that route to modules.
func (c *Coordinator) setupEventHandlers() error {
	err := c.device.AddTouchStripTouchHandler(func(d device.Device, touchType device.TouchStripTouchType, point image.Point) error {
		return c.routeStripEvent(module.TouchStripEventFromDeviceTap(touchType, point))
	})
	if err != nil {
		return fmt.Errorf("coordinator: registering touch handler: %w", err)
	}

	err = c.device.AddTouchStripSwipeHandler(func(d device.Device, origin, dest image.Point) error {
		return c.routeStripEvent(module.TouchStripEventFromSwipe(origin, dest))
	})
	if err != nil {
		return fmt.Errorf("coordinator: registering swipe handler: %w", err)
	}
	return nil
}

// routeStripEvent dispatches a strip event to the module whose region
// contains it. Swipes belong to the region they start in.
func (c *Coordinator) routeStripEvent(event module.TouchStripEvent) error {
	c.eventMu.Lock()
	defer c.eventMu.Unlock()

	for _, m := range c.modules {
		if c.isFailed(m) {
			continue
		}
		if c.resourcesForModule(m).OwnsPoint(event.Point) {
			return m.HandleStripTouch(event)
		}
	}
	return nil
}

// requestRepaint schedules a strip render. Requests made while one is pending
// are coalesced.
func (c *Coordinator) requestRepaint() {
	select {
	case c.repaintCh <- struct{}{}:
	default:
	}
}

// renderLoop renders the strip on repaint requests and on a slow refresh tick.
func (c *Coordinator) renderLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	// Initial render
	c.renderStrip()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.repaintCh:
			c.renderStrip()
		case <-ticker.C:
			c.renderStrip()
		}
	}
}

// renderStrip composites strip images from all modules and applies them to the device.
func (c *Coordinator) renderStrip() {
	composite := c.composeStrip()
	if composite == nil {
		return
	}
	if err := c.device.SetTouchStripImage(composite); err != nil {
		log.Printf("coordinator: setting strip image: %v", err)
	}
}

// composeStrip draws each module's strip output at its own region.
func (c *Coordinator) composeStrip() *image.RGBA {
	c.mu.RLock()
	stripRect := c.stripRect
	c.mu.RUnlock()
	if stripRect.Empty() {
		return nil
	}

	composite := image.NewRGBA(stripRect)
	for _, m := range c.modules {
		if c.isFailed(m) || !c.resourcesForModule(m).HasStrip() {
			continue
		}

		stripImg := m.RenderStrip()
		if stripImg == nil {
			continue
		}
		draw.Draw(composite, stripImg.Bounds(), stripImg, stripImg.Bounds().Min, draw.Over)
	}
	return composite
}
