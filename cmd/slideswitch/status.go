package main

import (
	"fmt"
	"os"
	"time"

	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/config"
	"github.com/phinze/slideswitch/internal/toggle"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check config, assets, and device health",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Slide Switch Status ===")
	fmt.Println()

	allOK := true

	// Config file
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fmt.Printf("Config file: %s\n", path)
	if _, err := os.Stat(path); err == nil {
		fmt.Println("  Status: found")
	} else {
		fmt.Println("  Status: not found (using defaults)")
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("  Load error: %v\n", err)
		fmt.Println()
		fmt.Println("Some checks failed. Run 'slideswitch setup' to configure.")
		return nil
	}
	fmt.Println()

	// Assets
	fmt.Println("Assets:")
	fmt.Printf("  Background: %s\n", orDefault(cfg.Assets.Background))
	fmt.Printf("  Thumb: %s\n", orDefault(cfg.Assets.Thumb))
	pair, err := assets.LoadPair(cfg.Assets.Background, cfg.Assets.Thumb, cfg.Assets.Height)
	if err != nil {
		fmt.Printf("  Load error: %v\n", err)
		allOK = false
	} else {
		geom, err := toggle.NewGeometry(pair.Background.Bounds().Size(), pair.Thumb.Bounds().Size())
		if err != nil {
			fmt.Printf("  Geometry: INVALID (%v)\n", err)
			allOK = false
		} else {
			size, thumb := geom.MeasuredSize(), geom.ThumbSize()
			fmt.Printf("  Size: %dx%d, thumb %dx%d, travel %dpx\n", size.X, size.Y, thumb.X, thumb.Y, geom.MaxOffset())
		}
	}
	fmt.Println()

	// Gestures
	fmt.Println("Gestures:")
	fmt.Printf("  Tap slop: %dpx, tap timeout: %s, long press: %s\n",
		cfg.Gesture.TapSlop, cfg.Gesture.TapTimeout.Std(), cfg.Gesture.LongPress.Std())
	fmt.Println()

	// Device check (quick USB probe)
	fmt.Println("Stream Deck:")
	dev := tryOpenWithTimeout(2 * time.Second)
	if dev != nil {
		fmt.Printf("  Device: CONNECTED (%s)\n", dev.GetModelName())
		if !dev.GetTouchStripSupported() {
			fmt.Println("  Touch strip: NOT SUPPORTED")
			allOK = false
		}
		dev.Close()
	} else {
		fmt.Println("  Device: not detected")
	}
	fmt.Printf("  Switch region: x=%d width=%d\n", cfg.Deck.StripX, cfg.Deck.StripWidth)
	fmt.Println()

	if allOK {
		fmt.Println("All checks passed.")
	} else {
		fmt.Println("Some checks failed. Run 'slideswitch setup' to configure.")
	}

	return nil
}

func orDefault(path string) string {
	if path == "" {
		return "(built-in)"
	}
	return path
}
