package main

import (
	"log"

	"github.com/phinze/slideswitch/internal/window"
	"github.com/spf13/cobra"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show the switch in a desktop window",
	RunE:  runWindow,
}

func runWindow(cmd *cobra.Command, args []string) error {
	log.Println("=== Slide Switch ===")
	log.Println("Close window or press Esc to exit")

	cfg, pair, err := loadSwitch()
	if err != nil {
		return err
	}
	return window.Run(cfg, pair)
}
