// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BENEFIT_HISTORY_BACKEND.
const EnvPrefix = "BENEFIT"

// Configuration holds all configuration for benefit-calculator.
type Configuration struct {
	Purchase        InputParams          `yaml:"purchase,omitempty"`
	EffectiveAmount EffectiveAmountInput `yaml:"effectiveAmount,omitempty"`
	History         HistoryConfig        `yaml:"history,omitempty"`
	Logging         LoggingConfig        `yaml:"logging,omitempty"`
	Output          OutputConfig         `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format   string `yaml:"format,omitempty"`   // pretty, csv, json
	Currency string `yaml:"currency,omitempty"` // ISO 4217 code
	Locale   string `yaml:"locale,omitempty"`   // BCP 47 tag
}

// HistoryConfig selects where saved calculations are persisted.
type HistoryConfig struct {
	Backend  string `yaml:"backend,omitempty"` // file, redis, memory
	File     string `yaml:"file,omitempty"`
	RedisURL string `yaml:"redisURL,omitempty"`
	RedisKey string `yaml:"redisKey,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults make the keys known to viper so environment overrides apply
	// even when the file omits them.
	v.SetDefault("history.backend", constants.HistoryBackendFile)
	v.SetDefault("history.file", constants.DefaultHistoryFile)
	v.SetDefault("history.redisURL", "")
	v.SetDefault("history.redisKey", constants.DefaultHistoryRedisKey)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	v.SetDefault("output.currency", constants.DefaultCurrency)
	v.SetDefault("output.locale", constants.DefaultLocale)
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	if err := configuration.History.Validate(); err != nil {
		return nil, err
	}

	return &configuration, nil
}

// Validate checks the history backend selection.
func (h HistoryConfig) Validate() error {
	switch h.Backend {
	case constants.HistoryBackendFile:
		if strings.TrimSpace(h.File) == "" {
			return fmt.Errorf("history.file is required for the %s backend", h.Backend)
		}
	case constants.HistoryBackendRedis:
		if strings.TrimSpace(h.RedisURL) == "" {
			return fmt.Errorf("history.redisURL is required for the %s backend", h.Backend)
		}
	case constants.HistoryBackendMemory:
	default:
		return fmt.Errorf("expected history backend of %s, %s or %s, got %s",
			constants.HistoryBackendFile, constants.HistoryBackendRedis, constants.HistoryBackendMemory, h.Backend)
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	return c.Purchase.Warnings()
}
