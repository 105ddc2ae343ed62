package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "slideswitch",
	Short:         "A sliding on/off switch for the desktop and the Stream Deck Plus touch strip",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultConfigPath()+")")
	rootCmd.AddCommand(windowCmd, emulatorCmd, deckCmd, renderCmd, statusCmd, setupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config, or the default location.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

// loadSwitch loads the configuration and the asset pair it names.
func loadSwitch() (*config.Config, assets.Pair, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, assets.Pair{}, fmt.Errorf("loading config: %w", err)
	}
	pair, err := assets.LoadPair(cfg.Assets.Background, cfg.Assets.Thumb, cfg.Assets.Height)
	if err != nil {
		return nil, assets.Pair{}, fmt.Errorf("loading assets: %w", err)
	}
	return cfg, pair, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			log.Println("\nReceived shutdown signal")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()
	return ctx, cancel
}
