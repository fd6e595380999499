// Package config loads the host and plugin configuration from an optional
// file, a .env file and EXCHANGE_RATE_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. EXCHANGE_RATE_APIKEY.
const EnvPrefix = "EXCHANGE_RATE"

type Config struct {
	APIKey      string        `mapstructure:"apikey"`
	Locale      string        `mapstructure:"locale"`
	AliasesFile string        `mapstructure:"aliases_file"`
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	LogLevel    string        `mapstructure:"log_level"`
	Listen      string        `mapstructure:"listen"`
}

// Load reads the configuration. path may be empty, in which case only
// defaults and the environment are used.
func Load(path string) (Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("apikey", "")
	v.SetDefault("locale", "en")
	v.SetDefault("aliases_file", "")
	v.SetDefault("base_url", "https://v6.exchangerate-api.com")
	v.SetDefault("timeout", "0s")
	v.SetDefault("log_level", "info")
	v.SetDefault("listen", ":8080")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Settings renders the plugin part of the configuration as the settings map
// a host hands to a plugin.
func (c Config) Settings() map[string]any {
	return map[string]any{
		"apikey":       c.APIKey,
		"locale":       c.Locale,
		"aliases_file": c.AliasesFile,
		"base_url":     c.BaseURL,
		"timeout":      c.Timeout.String(),
	}
}
