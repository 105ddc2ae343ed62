//go:build !darwin

package main

// wakeSignals never fires on platforms without a sleep notifier.
func wakeSignals() <-chan struct{} {
	return nil
}
