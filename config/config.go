// Package config loads runtime settings for the settlement from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid reports a setting outside its allowed range.
var ErrInvalid = errors.New("invalid setting")

// Window configures the host window.
type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Simulation holds the constants of the mosquito simulation.
type Simulation struct {
	// Population is the number of mosquitoes spawned at build time.
	Population int `yaml:"population"`
	// Residents is the number of people living in the settlement (tracker only).
	Residents int `yaml:"residents"`
	// EvaluationInterval is the simulated time, in seconds, between two
	// indoor/outdoor evaluation passes.
	EvaluationInterval float64 `yaml:"evaluation_interval"`
	// MosquitoSize is the side of a mosquito's square bounds in pixels.
	MosquitoSize float64 `yaml:"mosquito_size"`
	// MosquitoSpeed is the cruising speed in pixels per second.
	MosquitoSpeed float64 `yaml:"mosquito_speed"`
	// HeroSpeed is the player's speed in pixels per second.
	HeroSpeed float64 `yaml:"hero_speed"`
	// DaylightHours is the number of hours available for prevention work.
	DaylightHours float64 `yaml:"daylight_hours"`
}

// Atlas names a TexturePacker atlas: the JSON data file and its page images
// in page order. An empty Data selects the flat placeholder textures.
type Atlas struct {
	Data  string   `yaml:"data"`
	Pages []string `yaml:"pages"`
}

// Config is the full runtime configuration.
type Config struct {
	Window     Window     `yaml:"window"`
	Simulation Simulation `yaml:"simulation"`
	Atlas      Atlas      `yaml:"atlas"`
	// Level is a path to a .tmx or .yaml level; empty selects the embedded one.
	Level string `yaml:"level"`
	Debug bool   `yaml:"debug"`
}

// Default returns the embedded default configuration.
func Default() Config {
	cfg, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Parse decodes data over the defaults, so a file only needs the keys it
// changes, then validates the result.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if len(defaultYAML) > 0 {
		if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: unmarshal defaults: %w", err)
		}
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("config: window %dx%d: %w", c.Window.Width, c.Window.Height, ErrInvalid)
	case c.Simulation.Population < 0:
		return fmt.Errorf("config: population %d: %w", c.Simulation.Population, ErrInvalid)
	case c.Simulation.Residents < 0:
		return fmt.Errorf("config: residents %d: %w", c.Simulation.Residents, ErrInvalid)
	case c.Simulation.EvaluationInterval <= 0:
		return fmt.Errorf("config: evaluation_interval %v: %w", c.Simulation.EvaluationInterval, ErrInvalid)
	case c.Simulation.MosquitoSize <= 0:
		return fmt.Errorf("config: mosquito_size %v: %w", c.Simulation.MosquitoSize, ErrInvalid)
	case c.Simulation.MosquitoSpeed < 0 || c.Simulation.HeroSpeed < 0:
		return fmt.Errorf("config: negative speed: %w", ErrInvalid)
	case c.Simulation.DaylightHours < 0:
		return fmt.Errorf("config: daylight_hours %v: %w", c.Simulation.DaylightHours, ErrInvalid)
	case c.Atlas.Data != "" && len(c.Atlas.Pages) == 0:
		return fmt.Errorf("config: atlas %s has no pages: %w", c.Atlas.Data, ErrInvalid)
	}
	return nil
}
