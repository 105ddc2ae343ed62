package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/toggle"
	"github.com/spf13/cobra"
)

var (
	renderOut    string
	renderOffset int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write PNG snapshots of the switch",
	Long: `Render the switch off and on, and optionally with the thumb held at a
given offset, writing off.png, on.png and offset-N.png into --out.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderOut, "out", ".", "output directory")
	renderCmd.Flags().IntVar(&renderOffset, "offset", 0, "also render with the thumb dragged to this offset")
}

func runRender(cmd *cobra.Command, args []string) error {
	_, pair, err := loadSwitch()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(renderOut, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	snapshots := map[string]func(*toggle.Switch){
		"off.png": func(*toggle.Switch) {},
		"on.png":  switchOn,
	}
	if cmd.Flags().Changed("offset") {
		snapshots[fmt.Sprintf("offset-%d.png", renderOffset)] = func(sw *toggle.Switch) {
			dragTo(sw, renderOffset)
		}
	}

	for name, prepare := range snapshots {
		img, err := snapshot(pair, prepare)
		if err != nil {
			return err
		}
		path := filepath.Join(renderOut, name)
		if err := writePNG(path, img); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%dx%d)\n", path, img.Bounds().Dx(), img.Bounds().Dy())
	}
	return nil
}

// snapshot renders a fresh switch after prepare has driven it.
func snapshot(pair assets.Pair, prepare func(*toggle.Switch)) (*image.RGBA, error) {
	sw, err := toggle.New(pair.Background, pair.Thumb, toggle.Options{})
	if err != nil {
		return nil, err
	}
	prepare(sw)
	return sw.Render(), nil
}

// switchOn taps the switch.
func switchOn(sw *toggle.Switch) {
	sw.OnPointer(toggle.Down(0))
	sw.OnPointer(toggle.Up(0))
	sw.OnClick()
}

// dragTo holds the thumb mid-gesture at offset, clamped to the track.
func dragTo(sw *toggle.Switch, offset int) {
	sw.OnPointer(toggle.Down(0))
	sw.OnPointer(toggle.Move(float64(offset)))
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
