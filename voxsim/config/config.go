// Package config loads an Engine's grid resolution, gravity mode and
// worker bounds from a YAML file via viper, the way niceyeti-tabular
// loads its own training configuration.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// EngineConfig is the on-disk shape of a simulation's startup parameters.
type EngineConfig struct {
	XRes int `mapstructure:"xres"`
	YRes int `mapstructure:"yres"`
	ZRes int `mapstructure:"zres"`

	GravityMode string `mapstructure:"gravity_mode"`

	MaxWorkers int `mapstructure:"max_workers"`

	Debug bool `mapstructure:"debug"`
}

// DefaultEngineConfig returns the configuration used when no file is
// supplied: a modest 64^3 grid, vertical gravity, one worker per
// available core, debug assertions off.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		XRes:        64,
		YRes:        64,
		ZRes:        64,
		GravityMode: "vertical",
		MaxWorkers:  0, // 0 means "let the caller pick, e.g. runtime.GOMAXPROCS(0)"
		Debug:       false,
	}
}

// Load reads an EngineConfig from path (any format viper supports by
// extension: yaml, json, toml...), falling back to DefaultEngineConfig
// for any field left unset.
func Load(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("xres", cfg.XRes)
	v.SetDefault("yres", cfg.YRes)
	v.SetDefault("zres", cfg.ZRes)
	v.SetDefault("gravity_mode", cfg.GravityMode)
	v.SetDefault("max_workers", cfg.MaxWorkers)
	v.SetDefault("debug", cfg.Debug)

	if err := v.ReadInConfig(); err != nil {
		return EngineConfig{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return EngineConfig{}, fmt.Errorf("config: unmarshaling %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}

	return cfg, nil
}

// Validate rejects resolutions outside [3, 256] per axis (3 is the
// smallest grid with a non-border interior cell; 256 is MaxRes) and
// unrecognized gravity modes.
func (c EngineConfig) Validate() error {
	for _, axis := range [...]struct {
		name string
		v    int
	}{{"xres", c.XRes}, {"yres", c.YRes}, {"zres", c.ZRes}} {
		if axis.v < 3 || axis.v > 256 {
			return fmt.Errorf("config: %s=%d out of range [3, 256]", axis.name, axis.v)
		}
	}
	switch c.GravityMode {
	case "vertical", "zerog", "radial":
	default:
		return fmt.Errorf("config: unknown gravity_mode %q", c.GravityMode)
	}
	return nil
}
