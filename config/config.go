// Package config loads greennom settings from an optional config file and
// GREENNOM_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds the settings shared by the greennom commands.
type Config struct {
	Format    string `mapstructure:"format"`    // "text" (default), "json" or "lines"
	Positions bool   `mapstructure:"positions"` // print text ranges in text output
	Verbosity int    `mapstructure:"verbosity"` // commonlog verbosity, 0 = errors only
	LogFile   string `mapstructure:"log_file"`  // empty logs to stderr
	Trace     bool   `mapstructure:"trace"`     // log every grammar rule attempt
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Format:    "text",
		Positions: false,
		Verbosity: 0,
	}
}

// New returns a viper instance with defaults and environment bindings
// installed. When path is empty, .greennom.{yaml,json,toml} is looked up in
// the working directory and then in the user's home directory.
func New(path string) *viper.Viper {
	v := viper.New()

	d := Defaults()
	v.SetDefault("format", d.Format)
	v.SetDefault("positions", d.Positions)
	v.SetDefault("verbosity", d.Verbosity)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("trace", d.Trace)

	v.SetEnvPrefix("greennom")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		return v
	}
	v.SetConfigName(".greennom")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// Load reads the config file, if any, and decodes the settings. A missing
// config file is not an error unless path names it explicitly.
func Load(v *viper.Viper, path string) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Format {
	case "text", "json", "lines":
	default:
		return fmt.Errorf("unknown format: %s", c.Format)
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative: %d", c.Verbosity)
	}
	return nil
}
