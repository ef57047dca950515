package schelling

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config controls board size, population mix and the relocation rule.
type Config struct {
	// Locations is the requested cell count; the board side is floor(sqrt).
	Locations int     `yaml:"locations"`
	FractionA float64 `yaml:"fraction_a"`
	FractionB float64 `yaml:"fraction_b"`

	Threshold float64    `yaml:"threshold"`
	Policy    EdgePolicy `yaml:"policy"`

	Seed int64 `yaml:"seed"`
	// MaxSteps bounds headless runs; 0 means run until convergence.
	MaxSteps int `yaml:"max_steps"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Locations: 10000,
		FractionA: 0.25,
		FractionB: 0.25,
		Threshold: DefaultThreshold,
		Policy:    EdgeSkip,
		Seed:      1337,
	}
}

// ReferenceConfig returns the classic 300×300 setup.
func ReferenceConfig() Config {
	c := DefaultConfig()
	c.Locations = 90000
	return c
}

// Side returns the board side length for the configured locations.
func (c Config) Side() int { return SideFor(c.Locations) }

// Engine builds the engine for this configuration.
func (c Config) Engine() (Engine, error) { return NewEngine(c.Threshold, c.Policy) }

// Validate checks the configuration without building a grid.
func (c Config) Validate() error {
	if _, _, _, err := populationPools(c.Locations, c.FractionA, c.FractionB); err != nil {
		return err
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps %d < 0: %w", c.MaxSteps, ErrInvalidConfiguration)
	}
	_, err := c.Engine()
	return err
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["locations"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Locations = parsed
		}
	}
	if v, ok := cfg["fraction_a"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && validFraction(parsed) {
			c.FractionA = parsed
		}
	}
	if v, ok := cfg["fraction_b"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && validFraction(parsed) {
			c.FractionB = parsed
		}
	}
	if v, ok := cfg["threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && validFraction(parsed) {
			c.Threshold = parsed
		}
	}
	if v, ok := cfg["policy"]; ok {
		if parsed, err := ParseEdgePolicy(v); err == nil {
			c.Policy = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["max_steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxSteps = parsed
		}
	}
	return c
}

// Map renders the config as the key/value pairs FromMap accepts.
func (c Config) Map() map[string]string {
	return map[string]string{
		"locations":  strconv.Itoa(c.Locations),
		"fraction_a": strconv.FormatFloat(c.FractionA, 'g', -1, 64),
		"fraction_b": strconv.FormatFloat(c.FractionB, 'g', -1, 64),
		"threshold":  strconv.FormatFloat(c.Threshold, 'g', -1, 64),
		"policy":     c.Policy.String(),
		"seed":       strconv.FormatInt(c.Seed, 10),
		"max_steps":  strconv.Itoa(c.MaxSteps),
	}
}

// LoadFile reads a YAML config on top of the defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	c := DefaultConfig()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return c, nil
}

// ApplyEnv overrides fields from SCHELLING_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("SCHELLING_LOCATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Locations = n
		}
	}
	if v := os.Getenv("SCHELLING_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Threshold = f
		}
	}
	if v := os.Getenv("SCHELLING_POLICY"); v != "" {
		if p, err := ParseEdgePolicy(v); err == nil {
			c.Policy = p
		}
	}
	if v := os.Getenv("SCHELLING_SEED"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = n
		}
	}
}

// roundTo trims float noise from HUD +/- adjustments.
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
