package main

import (
	"log"

	"github.com/prashantgupta24/mac-sleep-notifier/notifier"
)

// wakeSignals reports system wake events. USB devices come back in a bad
// state after sleep, so a wake forces the deck to reconnect.
func wakeSignals() <-chan struct{} {
	sleepCh := notifier.GetInstance().Start()
	wakeCh := make(chan struct{}, 1)
	go func() {
		for activity := range sleepCh {
			if activity.Type == notifier.Awake {
				log.Println("System wake detected")
				select {
				case wakeCh <- struct{}{}:
				default:
				}
			}
		}
	}()
	return wakeCh
}
