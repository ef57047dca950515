package app

import "flag"

// Config represents the command-line parameters for the GUI.
type Config struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	ConfigPath string
	LogLevel   string
	HUDWidth   int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "schelling", Scale: 6, TPS: 10, LogLevel: "info", HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset (0 uses the configured seed)")
	fs.StringVar(&c.ConfigPath, "config", c.ConfigPath, "YAML world configuration")
	fs.StringVar(&c.LogLevel, "log", c.LogLevel, "log level: trace, debug, info, warn, error")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels (0 hides it)")
}

// Normalize clamps values that would make the window unusable.
func (c *Config) Normalize() {
	if c.Scale < 1 {
		c.Scale = 1
	}
	if c.TPS < 1 {
		c.TPS = 1
	}
	if c.HUDWidth < 0 {
		c.HUDWidth = 0
	}
}
