// Package constants provides shared constants for the benefit-calculator application.
package constants

import "time"

// TimestampLayout is the ISO-8601 layout used for history entry dates.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Financial constants
const (
	// DaysPerYear is the fixed year length used to prorate annual interest.
	// Leap years are not taken into account.
	DaysPerYear = 365

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// NearTieThreshold is the relative gap between the two largest benefits
	// below which no single option is recommended.
	NearTieThreshold = 0.05

	// HighAnnualRate is the annual rate above which a warning is emitted.
	HighAnnualRate = 100.0
)

// History constants
const (
	// HistoryCapacity is the number of saved calculations kept, newest first.
	HistoryCapacity = 5

	// DefaultHistoryFile is the default path of the file history backend.
	DefaultHistoryFile = "benefit-history.json"

	// DefaultHistoryRedisKey is the default key of the redis history backend.
	DefaultHistoryRedisKey = "calculator-storage"

	// HistoryBackendFile stores history in a local JSON file.
	HistoryBackendFile = "file"

	// HistoryBackendRedis stores history under a single redis key.
	HistoryBackendRedis = "redis"

	// HistoryBackendMemory keeps history for the lifetime of the process only.
	HistoryBackendMemory = "memory"
)

// Wizard constants
const (
	// StepAmount is the first wizard step collecting the purchase amount.
	StepAmount = 0

	// StepCashback collects the cashback program.
	StepCashback = 1

	// StepGracePeriod collects the grace period details.
	StepGracePeriod = 2

	// StepDiscount collects the discounted final price.
	StepDiscount = 3

	// StepResults shows the results. It is also the last step.
	StepResults = 4
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"

	// DefaultCurrency is the ISO 4217 code used when none is configured.
	DefaultCurrency = "RUB"

	// DefaultLocale is the BCP 47 tag used when none is configured.
	DefaultLocale = "ru-RU"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultShutdownTimeout bounds graceful shutdown of the API server
	DefaultShutdownTimeout = 10 * time.Second
)

// Validation constants
const (
	// MaxCashbackPercentage is the largest accepted cashback percentage.
	MaxCashbackPercentage = 100.0
)
