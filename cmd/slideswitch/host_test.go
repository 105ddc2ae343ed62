package main

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/config"
	"github.com/phinze/slideswitch/internal/device/emulator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSwitchCoordinatorRegion(t *testing.T) {
	pair, err := assets.Default(assets.DefaultHeight)
	require.NoError(t, err)
	emu := emulator.New(emulator.Config{TapSlop: 8})

	tests := []struct {
		name    string
		x, w    int
		wantErr bool
	}{
		{"left half", 0, 400, false},
		{"right half", 400, 400, false},
		{"whole strip", 0, 800, false},
		{"past the right edge", 500, 400, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Deck.StripX, cfg.Deck.StripWidth = tt.x, tt.w
			coord, err := newSwitchCoordinator("test", emu, cfg, pair)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, coord)
		})
	}
}

func TestLogSwitchChange(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	flags := log.Flags()
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})

	onChange := logSwitchChange("deck")
	onChange(true)
	onChange(false)
	assert.Equal(t, "deck: switch turned on\ndeck: switch turned off\n", buf.String())
}
