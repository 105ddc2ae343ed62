package module

import (
	"context"
	"image"
)

// BaseModule provides default no-op implementations of the Module interface.
// Embed this in module implementations to only override the methods needed.
type BaseModule struct {
	id        string
	resources Resources
}

// NewBaseModule creates a BaseModule with the given ID.
func NewBaseModule(id string) BaseModule {
	return BaseModule{id: id}
}

// ID returns the module's identifier.
func (b *BaseModule) ID() string {
	return b.id
}

// Init stores the resources for the module.
// Override this to perform module-specific initialization, but call the base
// implementation to ensure resources are properly stored.
func (b *BaseModule) Init(ctx context.Context, resources Resources) error {
	b.resources = resources
	return nil
}

// Stop is a no-op by default.
func (b *BaseModule) Stop() error {
	return nil
}

// RenderStrip returns nil by default (no strip updates).
func (b *BaseModule) RenderStrip() image.Image {
	return nil
}

// HandleStripTouch is a no-op by default.
func (b *BaseModule) HandleStripTouch(event TouchStripEvent) error {
	return nil
}

// Resources returns the allocated resources for this module.
func (b *BaseModule) Resources() Resources {
	return b.resources
}
