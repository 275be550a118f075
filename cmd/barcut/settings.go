package main

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/piwi3910/BarCut/internal/model"
	"github.com/piwi3910/BarCut/internal/project"
)

// Viper keys. Each can be set in ~/.barcut.yaml or as BARCUT_<KEY>.
const (
	keyBarLength = "bar_length"
	keyWeight    = "weight_per_meter"
	keyPrice     = "price_per_kg"
	keyWorkers   = "workers"
	keyOutputDir = "output_dir"
	keyLogo      = "logo"
)

// loadSettings starts from the saved app config shared with the GUI and
// applies the viper overrides on top.
func loadSettings() model.AppConfig {
	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		slog.Warn("failed to load app config, using defaults", "error", err)
		cfg = model.DefaultAppConfig()
	}

	if viper.IsSet(keyBarLength) {
		cfg.DefaultBarLength = viper.GetFloat64(keyBarLength)
	}
	if viper.IsSet(keyWeight) {
		cfg.DefaultWeightPerMeter = viper.GetFloat64(keyWeight)
	}
	if viper.IsSet(keyPrice) {
		cfg.DefaultPricePerKg = viper.GetFloat64(keyPrice)
	}
	if viper.IsSet(keyWorkers) {
		cfg.Workers = viper.GetInt(keyWorkers)
	}
	if viper.IsSet(keyOutputDir) {
		cfg.OutputDir = viper.GetString(keyOutputDir)
	}
	if viper.IsSet(keyLogo) {
		cfg.LogoPath = viper.GetString(keyLogo)
	}
	return cfg
}

// workersFlag returns --workers when given, else the configured count.
func workersFlag(cmd *cobra.Command, cfg model.AppConfig) int {
	if cmd.Flags().Changed("workers") {
		n, _ := cmd.Flags().GetInt("workers")
		return n
	}
	return cfg.Workers
}

// outputPath places relative export paths under the configured output dir.
func outputPath(cfg model.AppConfig, path string) string {
	if path == "" || filepath.IsAbs(path) || cfg.OutputDir == "" {
		return path
	}
	return filepath.Join(cfg.OutputDir, path)
}
