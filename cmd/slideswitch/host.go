package main

import (
	"fmt"
	"image"
	"log"

	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/config"
	"github.com/phinze/slideswitch/internal/coordinator"
	"github.com/phinze/slideswitch/internal/device"
	"github.com/phinze/slideswitch/internal/module"
	"github.com/phinze/slideswitch/internal/modules/stripswitch"
)

// newSwitchCoordinator builds a coordinator for dev with the switch module
// registered on the configured slice of the touch strip. State changes are
// logged under the given host name.
func newSwitchCoordinator(host string, dev device.Device, cfg *config.Config, pair assets.Pair) (*coordinator.Coordinator, error) {
	strip, err := device.StripRect(dev)
	if err != nil {
		return nil, err
	}

	region := image.Rect(
		strip.Min.X+cfg.Deck.StripX, strip.Min.Y,
		strip.Min.X+cfg.Deck.StripX+cfg.Deck.StripWidth, strip.Max.Y,
	)
	if !region.In(strip) {
		return nil, fmt.Errorf("switch region %v does not fit strip %v", region, strip)
	}

	coord := coordinator.New(dev)
	sw := stripswitch.New(pair, logSwitchChange(host))
	if err := coord.RegisterModule(sw, module.Resources{StripRect: region}); err != nil {
		return nil, err
	}
	return coord, nil
}

// logSwitchChange returns an OnChange hook that logs the new state.
func logSwitchChange(host string) func(on bool) {
	return func(on bool) {
		state := "off"
		if on {
			state = "on"
		}
		log.Printf("%s: switch turned %s", host, state)
	}
}
