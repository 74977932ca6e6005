package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/galton/internal/config"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	FlagConfig      = "config"
	FlagPreset      = "preset"
	FlagProbability = "probability"
	FlagUnits       = "units"
	FlagSteps       = "steps"
	FlagManual      = "manual"
	FlagTheme       = "theme"
	FlagSeed        = "seed"
	FlagLogLevel    = "log-level"
	FlagLogDir      = "log-dir"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("GALTON")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func addSettingsFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "config file path (default: $XDG_CONFIG_HOME/galton/config.yaml)")
	flags.String(FlagPreset, "", "preset name, see 'galton presets'")
	flags.Float64(FlagProbability, 0, "probability of going right, 0..1")
	flags.Float64(FlagUnits, 0, "total number of balls")
	flags.Int(FlagSteps, 0, "number of left/right choices per path")
	flags.Bool(FlagManual, false, "start in manual mode")
	flags.String(FlagTheme, "", "color theme")
	flags.Uint64(FlagSeed, 0, "random seed for drops (0 picks one)")
	flags.String(FlagLogLevel, "", "log level: debug, info, warn, error")
	flags.String(FlagLogDir, "", "directory for the TUI debug log")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
	})
}

// resolveConfig layers defaults, preset, config file, GALTON_* environment
// and flags, later sources winning.
func resolveConfig(v *viper.Viper) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if name := v.GetString(FlagPreset); name != "" {
		if err := config.Apply(cfg, name); err != nil {
			return nil, err
		}
	}

	path := v.GetString(FlagConfig)
	explicit := path != ""
	if !explicit {
		path = config.DefaultConfigPath()
	}
	if err := config.LoadInto(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if v.IsSet(FlagProbability) {
		cfg.Probability = v.GetFloat64(FlagProbability)
	}
	if v.IsSet(FlagUnits) {
		cfg.TotalUnits = v.GetFloat64(FlagUnits)
	}
	if v.IsSet(FlagSteps) {
		cfg.Steps = v.GetInt(FlagSteps)
	}
	if v.IsSet(FlagManual) {
		cfg.Manual = v.GetBool(FlagManual)
	}
	if v.IsSet(FlagTheme) {
		cfg.Theme = v.GetString(FlagTheme)
	}
	if v.IsSet(FlagSeed) {
		cfg.Seed = v.GetUint64(FlagSeed)
	}
	if v.IsSet(FlagLogLevel) {
		cfg.Log.Level = v.GetString(FlagLogLevel)
	}
	if v.IsSet(FlagLogDir) {
		cfg.Log.Dir = v.GetString(FlagLogDir)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
