// Package config provides configuration management for the analyzer and its CLI
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config holds the settings the analyzer recognizes.
// There is no process-wide instance: every analyzer carries its own copy.
type Config struct {
	// Cleaning
	StripCharacters string `json:"strip_characters" yaml:"strip_characters"` // Characters replaced by '_' in column names (empty = non-word, non-space)

	// Ingestion
	MissingValues []string `json:"missing_values" yaml:"missing_values"` // Cell contents read as missing
	Delimiter     string   `json:"delimiter" yaml:"delimiter"`           // CSV field delimiter

	// Derived metrics
	DensityGridSize int `json:"density_grid_size" yaml:"density_grid_size"` // Points on a density curve

	// Diagnostics
	LogLevel string `json:"log_level" yaml:"log_level"` // debug, info, warn or error
}

// Default configuration values
const (
	DefaultDensityGridSize = 50
	DefaultDelimiter       = ","
	DefaultLogLevel        = "info"

	envPrefix = "MINDHUNTER_"
)

// DefaultMissingValues are the cell contents treated as missing on ingestion.
var DefaultMissingValues = []string{"", "NA", "N/A", "NaN", "null"}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		StripCharacters: "",
		MissingValues:   append([]string(nil), DefaultMissingValues...),
		Delimiter:       DefaultDelimiter,
		DensityGridSize: DefaultDensityGridSize,
		LogLevel:        DefaultLogLevel,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if c.DensityGridSize < 2 {
		return fmt.Errorf("DensityGridSize must be at least 2, got %d", c.DensityGridSize)
	}

	if len([]rune(c.Delimiter)) != 1 {
		return fmt.Errorf("Delimiter must be a single character, got %q", c.Delimiter)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.MissingValues == nil {
		c.MissingValues = defaults.MissingValues
	}
	if c.Delimiter == "" {
		c.Delimiter = defaults.Delimiter
	}
	if c.DensityGridSize == 0 {
		c.DensityGridSize = defaults.DensityGridSize
	}
	if c.LogLevel == "" {
		c.LogLevel = defaults.LogLevel
	}

	// StripCharacters stays empty: empty already means the default pattern

	return c
}

// DelimiterRune returns the delimiter as a rune.
func (c Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}

// Level returns the slog level named by LogLevel, falling back to Info.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel parses a level name.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, fmt.Errorf("LogLevel must be one of debug, info, warn, error, got %q", name)
	}
	return level, nil
}

// LoadFromJSON loads configuration from JSON data
func LoadFromJSON(data []byte) (Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a file (supports JSON and YAML)
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv overlays MINDHUNTER_* environment variables on base.
// Unparseable values are ignored.
func LoadFromEnv(base Config) Config {
	config := base

	if val, ok := os.LookupEnv(envPrefix + "STRIP_CHARACTERS"); ok {
		config.StripCharacters = val
	}

	if val := os.Getenv(envPrefix + "MISSING_VALUES"); val != "" {
		tokens := strings.Split(val, ",")
		for i := range tokens {
			tokens[i] = strings.TrimSpace(tokens[i])
		}
		config.MissingValues = tokens
	}

	if val := os.Getenv(envPrefix + "DELIMITER"); val != "" {
		config.Delimiter = val
	}

	if val := os.Getenv(envPrefix + "DENSITY_GRID_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.DensityGridSize = parsed
		}
	}

	if val := os.Getenv(envPrefix + "LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	return config
}
