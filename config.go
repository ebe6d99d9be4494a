package planexplain

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/shibukawa/planexplain/explain"
)

// DefaultConfigFile is the configuration file looked up when none is given.
const DefaultConfigFile = "planexplain.yaml"

// Config represents the planexplain configuration
type Config struct {
	Database Database                    `yaml:"database"`
	Explain  ExplainConfig               `yaml:"explain"`
	Tables   map[string]TablePerformance `yaml:"tables"`
	Fixtures []string                    `yaml:"fixtures"`
}

// Database represents the connection the plans are collected from
type Database struct {
	Driver     string `yaml:"driver"`
	Connection string `yaml:"connection"`
}

// ExplainConfig represents plan collection settings
type ExplainConfig struct {
	Timeout        int  `yaml:"timeout"` // seconds, 0 disables
	AllowTempBTree bool `yaml:"allow_temp_btree"`
}

// TablePerformance defines per-table expectations used by the plan analyzer
type TablePerformance struct {
	AllowFullScan bool `yaml:"allow_full_scan"`
}

// AnalyzerOptions converts the table settings into options for explain.Analyze.
func (c *Config) AnalyzerOptions() explain.AnalyzerOptions {
	opts := explain.AnalyzerOptions{AllowTempBTree: c.Explain.AllowTempBTree}

	if len(c.Tables) == 0 {
		return opts
	}

	opts.Tables = make(map[string]explain.TableMetadata, len(c.Tables))
	for name, table := range c.Tables {
		opts.Tables[strings.ToLower(name)] = explain.TableMetadata{AllowFullScan: table.AllowFullScan}
	}

	return opts
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Check if config file exists
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		// Return default configuration if file doesn't exist
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes configuration YAML, rejecting unknown fields
func ParseConfig(data []byte) (*Config, error) {
	var config Config

	err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	switch strings.ToLower(config.Database.Driver) {
	case "", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("%w: %w '%s': must be sqlite3", ErrConfigValidation, ErrUnsupportedDriver, config.Database.Driver)
	}

	if config.Explain.Timeout < 0 {
		return fmt.Errorf("%w: explain.timeout must be non-negative, got %d", ErrConfigValidation, config.Explain.Timeout)
	}

	for name := range config.Tables {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: tables: table name must not be empty", ErrConfigValidation)
		}
	}

	return nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Database: Database{
			Driver:     "sqlite3",
			Connection: ":memory:",
		},
		Explain: ExplainConfig{
			Timeout: 30,
		},
		Tables: map[string]TablePerformance{},
	}
}

// applyDefaults fills in missing values
func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if config.Database.Driver == "" || strings.EqualFold(config.Database.Driver, "sqlite") {
		config.Database.Driver = defaults.Database.Driver
	}

	if config.Database.Connection == "" {
		config.Database.Connection = defaults.Database.Connection
	}

	if config.Tables == nil {
		config.Tables = defaults.Tables
	}
}

func loadEnvFiles() error {
	// Try to load .env file from current directory
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvVar  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

// expandConfigEnvVars expands environment variables in config
func expandConfigEnvVars(config *Config) {
	config.Database.Driver = expandEnvVars(config.Database.Driver)
	config.Database.Connection = expandEnvVars(config.Database.Connection)

	for i, file := range config.Fixtures {
		config.Fixtures[i] = expandEnvVars(file)
	}
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
