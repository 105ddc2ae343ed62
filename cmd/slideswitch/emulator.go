package main

import (
	"context"
	"log"

	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/config"
	"github.com/phinze/slideswitch/internal/device/emulator"
	"github.com/spf13/cobra"
)

var emulatorCmd = &cobra.Command{
	Use:   "emulator",
	Short: "Run the switch on an emulated Stream Deck Plus touch strip",
	RunE:  runEmulator,
}

func runEmulator(cmd *cobra.Command, args []string) error {
	log.Println("=== Stream Deck Emulator ===")
	log.Println("Close window or press Ctrl+C to exit")

	cfg, pair, err := loadSwitch()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	emu := emulator.New(emulator.Config{
		TapSlop:   cfg.Gesture.TapSlop,
		LongPress: cfg.Gesture.LongPress.Std(),
	})
	if err := emu.Open(); err != nil {
		return err
	}

	go runEmulated(ctx, cfg, pair, emu)

	// Run GUI on main thread (required for macOS)
	if err := emu.RunGUI(); err != nil {
		log.Printf("Emulator GUI error: %v", err)
	}
	return nil
}

// runEmulated runs the coordinator against the emulator until ctx is
// cancelled or the window closes.
func runEmulated(ctx context.Context, cfg *config.Config, pair assets.Pair, emu *emulator.Emulator) {
	log.Printf("Connected to: %s", emu.GetModelName())
	emu.SetBrightness(byte(cfg.Deck.Brightness))

	coord, err := newSwitchCoordinator("emulator", emu, cfg, pair)
	if err != nil {
		log.Printf("Failed to set up switch: %v", err)
		emu.Close()
		return
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- coord.Start(ctx)
	}()

	log.Println("Ready! Tap or drag the switch on the strip")

	select {
	case <-ctx.Done():
		log.Println("Shutting down...")
	case err := <-errChan:
		if err != nil {
			log.Printf("Coordinator error: %v", err)
		}
	}

	coord.Stop()
	if emu.IsOpen() {
		emu.Close()
	}
}
