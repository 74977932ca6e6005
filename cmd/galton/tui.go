package main

import (
	"fmt"

	"github.com/san-kum/galton/internal/automation"
	"github.com/san-kum/galton/internal/config"
	"github.com/san-kum/galton/internal/metrics"
	"github.com/san-kum/galton/internal/sim"
	"github.com/san-kum/galton/internal/viz"
	"github.com/spf13/viper"
)

func runTUI(v *viper.Viper) error {
	cfg, err := resolveConfig(v)
	if err != nil {
		return err
	}
	level, err := parseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	logs, err := SetupTUILogger(cfg.Log, level)
	if err != nil {
		return err
	}
	defer logs.LogFile.Close()

	logger := logs.Logger
	logger.Info("starting tui",
		"probability", cfg.Probability,
		"units", cfg.TotalUnits,
		"steps", cfg.Steps,
		"manual", cfg.Manual,
		"theme", cfg.Theme,
	)

	s := newSession(cfg)
	s.AddObserver(sim.NewLogObserver(logger))

	err = viz.Run(s,
		viz.WithTheme(cfg.Theme),
		viz.WithRand(automation.NewRand(cfg.Seed)),
		viz.WithLogger(logger),
	)
	if err != nil {
		logger.Error("tui exited", "error", err)
		return fmt.Errorf("run tui: %w", err)
	}
	logger.Info("tui closed", "completed", s.CompletedCount())
	return nil
}

// newSession builds a session with the default metrics attached.
func newSession(cfg *config.Config) *sim.Session {
	return cfg.NewSession(metrics.Defaults()...)
}
