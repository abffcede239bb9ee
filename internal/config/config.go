// Package config loads the settings of the spin command from defaults,
// an optional YAML file, SPIN_* environment variables and command flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SPIN"

// Config holds the viewer settings.
type Config struct {
	FPS        int     `yaml:"fps" mapstructure:"fps"`
	Background string  `yaml:"background" mapstructure:"background"`
	Color      string  `yaml:"color" mapstructure:"color"`
	Torque     float64 `yaml:"torque" mapstructure:"torque"`
	Distance   float64 `yaml:"distance" mapstructure:"distance"`
	Log        string  `yaml:"log" mapstructure:"log"`

	Spring SpringConfig `yaml:"spring" mapstructure:"spring"`
	Follow SpringConfig `yaml:"follow" mapstructure:"follow"`
}

// SpringConfig configures a harmonica spring.
type SpringConfig struct {
	Frequency float64 `yaml:"frequency" mapstructure:"frequency"`
	Damping   float64 `yaml:"damping" mapstructure:"damping"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		FPS:        60,
		Background: "30,30,40",
		Color:      "0,255,128",
		Torque:     3,
		Distance:   5,
		Spring:     SpringConfig{Frequency: 4, Damping: 1},
		Follow:     SpringConfig{Frequency: 6, Damping: 1},
	}
}

// flagKeys maps command flag names to config keys.
var flagKeys = map[string]string{
	"fps":              "fps",
	"bg":               "background",
	"color":            "color",
	"torque":           "torque",
	"distance":         "distance",
	"log":              "log",
	"spring-frequency": "spring.frequency",
	"spring-damping":   "spring.damping",
}

// Load reads the configuration. An explicit path must exist; without one
// spin.yaml is looked up in the user config directory and the working
// directory, and is optional. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("fps", def.FPS)
	v.SetDefault("background", def.Background)
	v.SetDefault("color", def.Color)
	v.SetDefault("torque", def.Torque)
	v.SetDefault("distance", def.Distance)
	v.SetDefault("log", def.Log)
	v.SetDefault("spring.frequency", def.Spring.Frequency)
	v.SetDefault("spring.damping", def.Spring.Damping)
	v.SetDefault("follow.frequency", def.Follow.Frequency)
	v.SetDefault("follow.damping", def.Follow.Damping)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("spin")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "spin"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.FPS < 1 || c.FPS > 240 {
		return fmt.Errorf("fps must be in [1, 240], got %d", c.FPS)
	}
	if _, err := ParseRGB(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := ParseRGB(c.Color); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if c.Distance <= 0 {
		return fmt.Errorf("distance must be positive, got %g", c.Distance)
	}
	for name, s := range map[string]SpringConfig{"spring": c.Spring, "follow": c.Follow} {
		if s.Frequency <= 0 {
			return fmt.Errorf("%s frequency must be positive, got %g", name, s.Frequency)
		}
		if s.Damping < 0 {
			return fmt.Errorf("%s damping must not be negative, got %g", name, s.Damping)
		}
	}
	return nil
}

// YAML returns c encoded as a config file.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ParseRGB parses "R,G,B" with each channel in [0, 255].
func ParseRGB(s string) (color.RGBA, error) {
	var r, g, b int
	if n, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil || n != 3 {
		return color.RGBA{}, fmt.Errorf("want R,G,B, got %q", s)
	}
	for _, c := range [3]int{r, g, b} {
		if c < 0 || c > 255 {
			return color.RGBA{}, fmt.Errorf("channel %d out of range in %q", c, s)
		}
	}
	return color.RGBA{uint8(r), uint8(g), uint8(b), 255}, nil
}
