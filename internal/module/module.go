// Package module defines the interface for touch strip feature modules.
package module

import (
	"context"
	"image"
)

// Module defines the interface that all touch strip modules implement.
type Module interface {
	// ID returns a unique identifier for this module instance.
	ID() string

	// Init initializes the module with the given context and allocated resources.
	// The context should be used for cancellation and lifecycle management.
	Init(ctx context.Context, resources Resources) error

	// Stop gracefully shuts down the module, releasing any resources.
	Stop() error

	// RenderStrip returns an image for this module's touch strip region.
	// The image uses strip coordinates. Returns nil if there is nothing to draw.
	RenderStrip() image.Image

	// HandleStripTouch processes a touch event on the module's strip region.
	// Event points use strip coordinates.
	HandleStripTouch(event TouchStripEvent) error
}
