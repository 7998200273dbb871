package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/binfgo/ebi/tools"
)

const configFilePath = "ebitool.json"

// Config represents the tool's configuration structure.
type Config struct {
	Email        string        `json:"email" mapstructure:"email"`
	BaseURL      string        `json:"base-url" mapstructure:"base-url"`
	LockDir      string        `json:"lock-dir" mapstructure:"lock-dir"`
	PollInterval time.Duration `json:"poll-interval" mapstructure:"poll-interval"`
	PollDeadline time.Duration `json:"poll-deadline" mapstructure:"poll-deadline"`
	LogLevel     string        `json:"log-level" mapstructure:"log-level"`
}

var requiredFields = []string{
	"email",
}

// field: default value
var optionalFields = map[string]interface{}{
	"base-url":      tools.DefaultBaseURL,
	"lock-dir":      ".",
	"poll-interval": "2s",
	"poll-deadline": "0s",
	"log-level":     "INFO",
}

// InitConfig reads configuration from a JSON file and environment variables.
// Environment variables take precedence over the config file.
func InitConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configFilePath)
	v.SetConfigType("json")

	v.AutomaticEnv()
	v.SetEnvPrefix("ebitool")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	for _, field := range requiredFields {
		v.BindEnv(field)
	}
	for field := range optionalFields {
		v.BindEnv(field)
	}

	// The config file is optional; env vars alone are enough.
	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(configFilePath); statErr == nil {
			return nil, fmt.Errorf("could not read config: %w", err)
		}
	}

	for _, field := range requiredFields {
		if !v.IsSet(field) {
			return nil, fmt.Errorf("missing required config field: %s", field)
		}
	}

	for optField, defaultValue := range optionalFields {
		v.SetDefault(optField, defaultValue)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	return &config, nil
}
