package app

import (
	"github.com/spf13/pflag"

	"vajontsim/internal/reservoir"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Scale int
	TPS   int
	Seed  int64
	Level float64
	Mute  bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Scale: 2,
		TPS:   60,
		Seed:  42,
		Level: reservoir.DefaultLevel,
		Mute:  false,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for particle randomization")
	fs.Float64Var(&c.Level, "level", c.Level, "initial reservoir level (0-100)")
	fs.BoolVar(&c.Mute, "mute", c.Mute, "disable sound effects")
}
