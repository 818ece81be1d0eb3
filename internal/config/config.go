// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Store backend names accepted in configuration
const (
	StoreFS       = "fs"
	StorePostgres = "postgres"
)

// Strategy names accepted in configuration
const (
	StrategyTemplate   = "template"
	StrategyGenerative = "generative"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Output
	OutputDir string `json:"output_dir,omitempty"` // Directory for the filesystem store, created on first use
	Store     string `json:"store,omitempty" validate:"omitempty,oneof=fs postgres"`

	// Generation
	Strategy              string  `json:"strategy,omitempty" validate:"omitempty,oneof=template generative"`
	UniquenessThreshold   float64 `json:"uniqueness_threshold,omitempty" validate:"omitempty,gt=0,lte=100"`
	MaxRetries            int     `json:"max_retries,omitempty" validate:"omitempty,gte=0,lte=10"`
	PublishBelowThreshold bool    `json:"publish_below_threshold,omitempty"`
	Limit                 int     `json:"limit,omitempty" validate:"omitempty,gte=0"` // Max pages per run, 0 = no cap

	// Pacing
	CallDelaySeconds int `json:"call_delay_seconds,omitempty" validate:"omitempty,gte=0"`
	JobPauseSeconds  int `json:"job_pause_seconds,omitempty" validate:"omitempty,gte=0"`
	BatchSize        int `json:"batch_size,omitempty" validate:"omitempty,gte=1"`

	// Services
	APIKey      string `json:"api_key,omitempty"`                                    // Gemini API key
	DatabaseURL string `json:"database_url,omitempty" validate:"omitempty,startswith=postgres"` // PostgreSQL connection URL

	// Serving
	ServeAddr string `json:"serve_addr,omitempty" validate:"omitempty,hostname_port"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed progress information
}

// Defaults returns the baseline configuration used when nothing is provided
func Defaults() Config {
	return Config{
		OutputDir:           "generated",
		Store:               StoreFS,
		Strategy:            StrategyTemplate,
		UniquenessThreshold: 70,
		MaxRetries:          3,
		CallDelaySeconds:    20,
		JobPauseSeconds:     2,
		BatchSize:           1,
		ServeAddr:           "localhost:8080",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks that the configuration has valid values, plus the
// cross-field rules the struct tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return fmt.Errorf("config error: field %q fails %q", first.Field(), first.Tag())
		}
		return err
	}

	if c.Strategy == StrategyGenerative && c.APIKey == "" && os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("config error: generative strategy requires 'api_key' or GEMINI_API_KEY")
	}
	if c.Store == StorePostgres && c.DatabaseURL == "" {
		return fmt.Errorf("config error: postgres store requires 'database_url'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled
// from defaults. This is used to apply config file values as defaults for
// CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.Strategy == "" {
		result.Strategy = defaults.Strategy
	}
	if result.UniquenessThreshold == 0 {
		result.UniquenessThreshold = defaults.UniquenessThreshold
	}
	if result.MaxRetries == 0 {
		result.MaxRetries = defaults.MaxRetries
	}
	if result.Limit == 0 {
		result.Limit = defaults.Limit
	}
	if result.CallDelaySeconds == 0 {
		result.CallDelaySeconds = defaults.CallDelaySeconds
	}
	if result.JobPauseSeconds == 0 {
		result.JobPauseSeconds = defaults.JobPauseSeconds
	}
	if result.BatchSize == 0 {
		result.BatchSize = defaults.BatchSize
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ServeAddr == "" {
		result.ServeAddr = defaults.ServeAddr
	}
	result.Verbose = result.Verbose || defaults.Verbose
	result.PublishBelowThreshold = result.PublishBelowThreshold || defaults.PublishBelowThreshold

	return result
}

// CallDelay returns the inter-call delay as a duration
func (c *Config) CallDelay() time.Duration {
	return time.Duration(c.CallDelaySeconds) * time.Second
}

// JobPause returns the inter-job pause as a duration
func (c *Config) JobPause() time.Duration {
	return time.Duration(c.JobPauseSeconds) * time.Second
}
