package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds the settings of the example program
type Config struct {
	Input     string    `mapstructure:"input"`
	Separator string    `mapstructure:"separator"`
	Normalize bool      `mapstructure:"normalize"`
	Dump      bool      `mapstructure:"dump"`
	Log       LogConfig `mapstructure:"log"`
}

// LogConfig holds logging related configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// LoadConfig loads configuration from an optional file and PATHTRIE_*
// environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("pathtrie")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "")
	v.SetDefault("separator", "/")
	v.SetDefault("normalize", true)
	v.SetDefault("dump", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Separator == "" {
		return fmt.Errorf("separator cannot be empty")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return nil
}
