package qsim

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the defaults a Run falls back to when no option overrides them.
type Config struct {
	Shots     int
	Workers   int
	Tolerance float64
	LogLevel  string

	// Seed is only used when HasSeed is true.
	Seed    uint64
	HasSeed bool
}

func NewConfig() *Config {
	return &Config{
		Shots:     1024,
		Workers:   1,
		Tolerance: 1e-9,
		LogLevel:  "info",
	}
}

/*
LoadConfig layers an optional config file and QSIM_* environment variables
over the defaults from NewConfig. An empty path skips the file.
*/
func LoadConfig(path string) (*Config, error) {
	defaults := NewConfig()

	v := viper.New()
	v.SetDefault("shots", defaults.Shots)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("tolerance", defaults.Tolerance)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix("qsim")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Shots:     v.GetInt("shots"),
		Workers:   v.GetInt("workers"),
		Tolerance: v.GetFloat64("tolerance"),
		LogLevel:  v.GetString("log_level"),
	}

	if v.IsSet("seed") {
		cfg.Seed = v.GetUint64("seed")
		cfg.HasSeed = true
	}

	if cfg.Shots < 1 {
		return nil, fmt.Errorf("config shots=%d: %w", cfg.Shots, ErrInvalidShots)
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = defaults.Tolerance
	}

	return cfg, nil
}
