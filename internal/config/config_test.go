package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
assets:
  background: /tmp/bg.png
  thumb: /tmp/thumb.png
window:
  scale: 3
gesture:
  tap_slop: 4
  tap_timeout: 250ms
deck:
  strip_x: 400
`), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bg.png", cfg.Assets.Background)
	assert.Equal(t, "/tmp/thumb.png", cfg.Assets.Thumb)
	assert.Equal(t, 56, cfg.Assets.Height, "unset keys keep defaults")
	assert.Equal(t, 3.0, cfg.Window.Scale)
	assert.Equal(t, "slideswitch", cfg.Window.Title)
	assert.Equal(t, 4, cfg.Gesture.TapSlop)
	assert.Equal(t, 250*time.Millisecond, cfg.Gesture.TapTimeout.Std())
	assert.Equal(t, 500*time.Millisecond, cfg.Gesture.LongPress.Std())
	assert.Equal(t, 400, cfg.Deck.StripX)
}

func TestLoadFileEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  scale: 3\n"), 0o644))

	t.Setenv("SLIDESWITCH_SCALE", "1.5")
	t.Setenv("SLIDESWITCH_BRIGHTNESS", "40")
	t.Setenv("SLIDESWITCH_BACKGROUND", "a.svg")
	t.Setenv("SLIDESWITCH_THUMB", "b.svg")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.Window.Scale)
	assert.Equal(t, 40, cfg.Deck.Brightness)
	assert.Equal(t, "a.svg", cfg.Assets.Background)
	assert.Equal(t, "b.svg", cfg.Assets.Thumb)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "bad yaml", yaml: "assets: [\n"},
		{name: "bad duration", yaml: "gesture:\n  tap_timeout: soon\n"},
		{name: "half assets", yaml: "assets:\n  background: bg.png\n"},
		{name: "zero scale", yaml: "window:\n  scale: 0\n"},
		{name: "brightness", yaml: "deck:\n  brightness: 101\n"},
		{name: "negative slop", yaml: "gesture:\n  tap_slop: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadUsesConfigEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  title: custom\n"), 0o644))
	t.Setenv("SLIDESWITCH_CONFIG", path)

	assert.Equal(t, path, DefaultConfigPath())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.Window.Title)
}

func TestWriteConfigFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Gesture.TapTimeout = Duration(150 * time.Millisecond)
	cfg.Deck.StripX = 200

	require.NoError(t, WriteConfigFile(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tap_timeout: 150ms")

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
