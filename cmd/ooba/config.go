package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "OOBA"
	configName     = "ooba"
	defaultBaseURL = "http://127.0.0.1:5000"
)

// config holds settings resolved from flags, OOBA_* environment variables
// and the config file, in that order of precedence.
type config struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	Verbose    bool   `mapstructure:"verbose"`
	SessionDir string `mapstructure:"session_dir"`
}

// configKeys maps config keys to the persistent flags that override them.
var configKeys = map[string]string{
	"base_url": "base-url",
	"api_key":  "api-key",
	"model":    "model",
	"verbose":  "verbose",
}

// loadConfig reads the config file at path, or searches the default
// locations when path is empty. A missing file is only an error when path
// was given explicitly.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet, path string) (config, error) {
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("session_dir", defaultSessionDir())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for key, flag := range configKeys {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return config{}, fmt.Errorf("bind flag %s: %w", flag, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, configName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return config{}, errors.New("base URL must not be empty")
	}
	return cfg, nil
}

func defaultSessionDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, configName, "sessions")
}
