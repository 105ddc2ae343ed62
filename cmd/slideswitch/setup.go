package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/phinze/slideswitch/internal/assets"
	"github.com/phinze/slideswitch/internal/config"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup: choose assets and write the config file",
	RunE:  runSetup,
}

func runSetup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}

	fmt.Println("=== Slide Switch Setup ===")
	fmt.Println()

	// Load existing config as defaults
	existing, err := loadConfig()
	if err != nil {
		fmt.Printf("Ignoring existing config: %v\n", err)
		existing = config.Default()
	}

	cfg, err := promptConfig(bufio.NewReader(os.Stdin), existing)
	if err != nil {
		return err
	}

	if _, err := assets.LoadPair(cfg.Assets.Background, cfg.Assets.Thumb, cfg.Assets.Height); err != nil {
		return fmt.Errorf("checking assets: %w", err)
	}

	if err := config.WriteConfigFile(path, cfg); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	fmt.Printf("Config written to %s\n", path)
	fmt.Println("Setup complete!")
	return nil
}

// promptConfig walks through every setting, offering the existing value as
// the default.
func promptConfig(reader *bufio.Reader, existing *config.Config) (*config.Config, error) {
	cfg := *existing

	fmt.Println("-- Assets (enter - for both to use the built-in switch) --")
	cfg.Assets.Background = prompt(reader, "Background image", existing.Assets.Background)
	cfg.Assets.Thumb = prompt(reader, "Thumb image", existing.Assets.Thumb)

	var err error
	if cfg.Assets.Height, err = promptInt(reader, "SVG height (px)", existing.Assets.Height); err != nil {
		return nil, err
	}
	fmt.Println()

	fmt.Println("-- Window --")
	cfg.Window.Title = prompt(reader, "Title", existing.Window.Title)
	scale := prompt(reader, "Scale", strconv.FormatFloat(existing.Window.Scale, 'g', -1, 64))
	if cfg.Window.Scale, err = strconv.ParseFloat(scale, 64); err != nil {
		return nil, fmt.Errorf("scale: %w", err)
	}
	fmt.Println()

	fmt.Println("-- Stream Deck --")
	if cfg.Deck.Brightness, err = promptInt(reader, "Brightness (0-100)", existing.Deck.Brightness); err != nil {
		return nil, err
	}
	if cfg.Deck.StripX, err = promptInt(reader, "Strip region x", existing.Deck.StripX); err != nil {
		return nil, err
	}
	if cfg.Deck.StripWidth, err = promptInt(reader, "Strip region width", existing.Deck.StripWidth); err != nil {
		return nil, err
	}
	fmt.Println()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// clearValue is the answer that empties a setting instead of keeping its default.
const clearValue = "-"

// prompt asks for a value with an optional default. Answering clearValue
// returns an empty string.
func prompt(reader *bufio.Reader, label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("  %s [%s]: ", label, defaultVal)
	} else {
		fmt.Printf("  %s: ", label)
	}
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return defaultVal
	}
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return defaultVal
	case clearValue:
		return ""
	}
	return line
}

// promptInt asks for an integer with a default.
func promptInt(reader *bufio.Reader, label string, defaultVal int) (int, error) {
	s := prompt(reader, label, strconv.Itoa(defaultVal))
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", strings.ToLower(label), err)
	}
	return v, nil
}
