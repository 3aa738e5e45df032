package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cookedbird/internal/config"
)

var flagFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the game configuration",
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration",
	Long: `Print the configuration a game would start with, after the config file
search, the difficulty preset and validation.

Config search order:
  --config <path>
  ~/.cookedbird/config.yaml or ~/.cookedbird/config.toml
  ./configs/cookedbird.yaml
  built-in defaults

Examples:
  cookedbird config print
  cookedbird config print --format toml > ~/.cookedbird/config.toml
  cookedbird config print --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runConfigPrint,
}

func init() {
	configPrintCmd.Flags().StringVar(&flagFormat, "format", "yaml", "Output format: yaml or toml")
	configCmd.AddCommand(configPrintCmd)
}

func runConfigPrint(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: logLevel()})

	cfg, err := loadGameConfig(logger)
	if err != nil {
		return err
	}
	data, err := config.Encode(cfg, flagFormat)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
