package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"stampworks/mediatype/pkg/config"
	"stampworks/mediatype/pkg/mediatype"
	"stampworks/mediatype/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile      string
	registryFile string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "mediatype",
	Short: "Media-type validation for embedded asset payloads",
	Long: `Mediatype validates and canonicalizes the media-type strings attached to
asset-issuance transactions.

The canonical form it produces is embedded in indexed transaction metadata
and participates in the consensus hash, so every node must derive identical
bytes from identical input. The same engine backs the check command, the
registry inspector, and the replay-drift audit.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&registryFile, "registry", "r", "", "registry document (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig resolves the effective configuration: file if given, defaults
// otherwise, with flag overrides applied last.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		loaded, err := config.LoadWithEnvOverrides(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}
	if registryFile != "" {
		cfg.Registry.Path = registryFile
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// buildGate assembles the validation gate from the configured registry.
func buildGate(cfg *config.Config) (*mediatype.Gate, error) {
	if cfg.Registry.Path == "" {
		return mediatype.NewGate(mediatype.Builtin()), nil
	}
	reg, err := mediatype.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		return nil, err
	}
	return mediatype.NewGate(reg), nil
}

// buildLogger creates the process logger, writing to stderr so command
// output on stdout stays machine-readable.
func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(cfg.Telemetry.Logging, os.Stderr)
}
