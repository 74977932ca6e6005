package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/galton/internal/sim"
	"github.com/san-kum/galton/internal/walk"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTheme      = "classic"
	DefaultLogLevel   = "warn"
	DefaultMaxSizeMB  = 5
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 14
	MaxSteps          = 60
	MaxTotalUnits     = 1000
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalidConfig = errors.New("config: invalid value")
)

type Config struct {
	Probability float64   `yaml:"probability"`
	TotalUnits  float64   `yaml:"total_units"`
	Steps       int       `yaml:"steps"`
	Manual      bool      `yaml:"manual"`
	Theme       string    `yaml:"theme"`
	Seed        uint64    `yaml:"seed"`
	Log         LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

func DefaultConfig() *Config {
	return &Config{
		Probability: sim.DefaultProbability,
		TotalUnits:  sim.DefaultTotalUnits,
		Steps:       walk.DefaultSteps,
		Theme:       DefaultTheme,
		Log: LogConfig{
			Level:      DefaultLogLevel,
			Dir:        DefaultLogDir(),
			MaxSizeMB:  DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
			MaxAgeDays: DefaultMaxAgeDays,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes the file over cfg. Keys missing from the file keep their
// current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the UI controls could never produce. The core
// itself accepts anything; this only guards file and flag input.
func (c *Config) Validate() error {
	if c.Probability < 0 || c.Probability > 1 {
		return fmt.Errorf("%w: probability %v outside [0,1]", ErrInvalidConfig, c.Probability)
	}
	if c.TotalUnits < 0 || c.TotalUnits > MaxTotalUnits {
		return fmt.Errorf("%w: total_units %v outside [0,%d]", ErrInvalidConfig, c.TotalUnits, MaxTotalUnits)
	}
	if c.Steps < 1 || c.Steps > MaxSteps {
		return fmt.Errorf("%w: steps %d outside [1,%d]", ErrInvalidConfig, c.Steps, MaxSteps)
	}
	return nil
}

func (c *Config) Parameters() sim.Parameters {
	return sim.Parameters{
		RightProbability: c.Probability,
		TotalUnits:       c.TotalUnits,
		Steps:            c.Steps,
	}
}

// NewSession builds a session from the config with the given metrics
// attached, entering manual mode when requested.
func (c *Config) NewSession(ms ...sim.Metric) *sim.Session {
	s := sim.New(c.Parameters())
	for _, m := range ms {
		s.AddMetric(m)
	}
	if c.Manual {
		s.SwitchMode(true)
	}
	return s
}
