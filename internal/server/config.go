package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/iwvelando/benefit-calculator/internal/config"
	"github.com/iwvelando/benefit-calculator/pkg/constants"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the server config file. They may also
// be set through a .env file.
const (
	EnvAddress        = "BENEFIT_SERVER_ADDRESS"
	EnvHistoryBackend = "BENEFIT_HISTORY_BACKEND"
	EnvRedisURL       = "BENEFIT_HISTORY_REDIS_URL"
	EnvAllowedOrigins = "BENEFIT_CORS_ALLOWED_ORIGINS"
)

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address         string               `yaml:"address"`
	MaxUploadSize   string               `yaml:"maxUploadSize"`
	ShutdownTimeout time.Duration        `yaml:"shutdownTimeout"`
	AllowedOrigins  []string             `yaml:"allowedOrigins"`
	Logging         config.LoggingConfig `yaml:"logging"`
	History         config.HistoryConfig `yaml:"history"`
	Output          config.OutputConfig  `yaml:"output"`
	uploadSizeBytes int64
}

// LoadConfig loads the server configuration from YAML and applies
// environment overrides. If the file does not exist, defaults are used.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:         constants.DefaultServerAddress,
		MaxUploadSize:   fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes),
		ShutdownTimeout: constants.DefaultShutdownTimeout,
		AllowedOrigins:  []string{"*"},
		Logging:         config.LoggingConfig{},
		History: config.HistoryConfig{
			Backend:  constants.HistoryBackendFile,
			File:     constants.DefaultHistoryFile,
			RedisKey: constants.DefaultHistoryRedisKey,
		},
		Output: config.OutputConfig{
			Currency: constants.DefaultCurrency,
			Locale:   constants.DefaultLocale,
		},
		uploadSizeBytes: constants.DefaultMaxUploadSizeBytes,
	}

	if path == "" {
		return cfg, cfg.finish()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, cfg.finish()
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) finish() error {
	c.applyEnv()
	if err := c.normalize(); err != nil {
		return err
	}
	return c.History.Validate()
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAddress)); v != "" {
		c.Address = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryBackend)); v != "" {
		c.History.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRedisURL)); v != "" {
		c.History.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAllowedOrigins)); v != "" {
		var origins []string
		for _, origin := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		c.AllowedOrigins = origins
	}
}

// UploadSizeBytes returns the configured upload size in bytes.
func (c *Config) UploadSizeBytes() int64 {
	return c.uploadSizeBytes
}

// SetUploadSizeBytes overrides the configured upload size.
func (c *Config) SetUploadSizeBytes(size int64) {
	if size > 0 {
		c.uploadSizeBytes = size
		c.MaxUploadSize = fmt.Sprintf("%d", size)
	}
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = constants.DefaultShutdownTimeout
	}
	if c.History.Backend == "" {
		c.History.Backend = constants.HistoryBackendFile
	}
	if c.History.Backend == constants.HistoryBackendFile && c.History.File == "" {
		c.History.File = constants.DefaultHistoryFile
	}
	if c.History.RedisKey == "" {
		c.History.RedisKey = constants.DefaultHistoryRedisKey
	}

	sizeStr := strings.TrimSpace(c.MaxUploadSize)
	if sizeStr == "" {
		c.uploadSizeBytes = constants.DefaultMaxUploadSizeBytes
		c.MaxUploadSize = fmt.Sprintf("%d", constants.DefaultMaxUploadSizeBytes)
		return nil
	}

	bytes, err := ParseSize(sizeStr)
	if err != nil {
		return err
	}
	if bytes <= 0 {
		bytes = constants.DefaultMaxUploadSizeBytes
	}
	c.uploadSizeBytes = bytes
	return nil
}

// ParseSize converts a human-friendly byte string (e.g., "256K", "10M") into bytes.
func ParseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	upper := strings.ToUpper(trimmed)
	idx := len(upper)
	for idx > 0 && !unicode.IsDigit(rune(upper[idx-1])) {
		idx--
	}
	if idx == 0 {
		return 0, fmt.Errorf("invalid size: %s", value)
	}
	numPart := strings.TrimSpace(upper[:idx])
	unitPart := strings.TrimSpace(upper[idx:])

	if numPart == "" {
		return 0, fmt.Errorf("invalid size: %s", value)
	}

	n, err := strconv.ParseInt(numPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value %q: %w", value, err)
	}

	var multiplier int64
	switch unitPart {
	case "", "B":
		multiplier = 1
	case "K", "KB":
		multiplier = 1024
	case "M", "MB":
		multiplier = 1024 * 1024
	case "G", "GB":
		multiplier = 1024 * 1024 * 1024
	default:
		return 0, fmt.Errorf("unsupported size unit %q", unitPart)
	}

	result := n * multiplier
	if result < 0 {
		return 0, fmt.Errorf("size overflow for value %s", value)
	}
	return result, nil
}
