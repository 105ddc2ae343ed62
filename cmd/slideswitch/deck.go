package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/config"
	"github.com/phinze/slideswitch/internal/device"
	"github.com/spf13/cobra"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Run the switch on a connected Stream Deck Plus, reconnecting as needed",
	RunE:  runDeck,
}

func runDeck(cmd *cobra.Command, args []string) error {
	log.Println("=== Stream Deck Slide Switch ===")
	log.Println("Press Ctrl+C to exit")

	cfg, pair, err := loadSwitch()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	wakeCh := wakeSignals()

	// Main device loop - wait for device, run, repeat on disconnect
	for {
		dev := waitForHardwareDevice(ctx, wakeCh)
		if dev == nil {
			// Context cancelled
			return nil
		}

		// Check context before starting - avoid race where device connects after shutdown requested
		select {
		case <-ctx.Done():
			log.Println("Exiting...")
			dev.Close()
			return nil
		default:
		}

		// Drain any stale wake signals that accumulated while waiting for device.
	drainWake:
		for {
			select {
			case <-wakeCh:
				log.Println("Draining stale wake signal")
			default:
				break drainWake
			}
		}

		// USB enumeration may not be complete even after the device opens.
		time.Sleep(500 * time.Millisecond)

		runWithDevice(ctx, cfg, pair, dev, wakeCh)

		select {
		case <-ctx.Done():
			log.Println("Exiting...")
			return nil
		default:
			log.Println("Waiting for device reconnect...")
		}
	}
}

// tryOpenWithTimeout attempts to find and open a Stream Deck with a timeout.
// The timeout prevents blocking indefinitely when the USB subsystem is in a
// bad state.
func tryOpenWithTimeout(timeout time.Duration) *device.HardwareDevice {
	type result struct {
		dev *device.HardwareDevice
		err error
	}
	ch := make(chan result, 1)

	go func() {
		dev, err := device.OpenHardware()
		ch <- result{dev, err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			return nil
		}
		return r.dev
	case <-time.After(timeout):
		log.Println("Device detection timed out")
		return nil
	}
}

// waitForHardwareDevice polls for a Stream Deck until one is available.
// Wake signals trigger an immediate burst of retries instead of waiting for
// the poll interval.
func waitForHardwareDevice(ctx context.Context, wakeCh <-chan struct{}) device.Device {
	const deviceTimeout = 5 * time.Second

	if dev := tryOpenWithTimeout(deviceTimeout); dev != nil {
		return dev
	}

	log.Println("Waiting for device...")

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-wakeCh:
			// After wake, USB devices may take several seconds to enumerate.
			log.Println("Wake signal received, probing for device...")
			for i := 0; i < 10; i++ {
				if dev := tryOpenWithTimeout(deviceTimeout); dev != nil {
					log.Println("Device connected!")
					return dev
				}
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(500 * time.Millisecond):
				}
			}
			log.Println("Device not found after wake, resuming polling...")
		case <-time.After(2 * time.Second):
		}

		if dev := tryOpenWithTimeout(deviceTimeout); dev != nil {
			log.Println("Device connected!")
			return dev
		}
	}
}

// runWithDevice runs the coordinator with the given device until disconnect,
// wake, or context cancel.
func runWithDevice(ctx context.Context, cfg *config.Config, pair assets.Pair, dev device.Device, wakeCh <-chan struct{}) {
	log.Printf("Connected to: %s", dev.GetModelName())

	if err := dev.SetBrightness(byte(cfg.Deck.Brightness)); err != nil {
		log.Printf("Setting brightness: %v", err)
	}

	// Create coordinator and module fresh for each connection
	coord, err := newSwitchCoordinator("deck", dev, cfg, pair)
	if err != nil {
		log.Printf("Failed to set up switch: %v", err)
		dev.Close()
		return
	}

	// Run coordinator with a child context so we can stop it independently
	runCtx, runCancel := context.WithCancel(ctx)
	defer runCancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- coord.Start(runCtx)
	}()

	log.Println("Ready! Tap or swipe the switch on the strip")

	select {
	case <-ctx.Done():
		log.Println("Shutting down...")
	case err := <-errChan:
		if err != nil {
			log.Printf("Device disconnected: %v", err)
		}
	case <-wakeCh:
		log.Println("Reconnecting device after wake...")
	}

	runCancel()

	done := make(chan struct{})
	go func() {
		coord.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		log.Println("Cleanup timed out")
	}

	// Let pending USB I/O callbacks complete before closing.
	time.Sleep(200 * time.Millisecond)

	closeDone := make(chan struct{})
	go func() {
		dev.Close()
		close(closeDone)
	}()

	// device.Close() may block indefinitely; on shutdown, don't wait for it.
	select {
	case <-ctx.Done():
		log.Println("Exiting...")
		os.Exit(0)
	case <-closeDone:
	case <-time.After(3 * time.Second):
		log.Println("Device close timed out")
	}
}
