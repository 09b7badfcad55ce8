// Package config loads YAML settings for the md2resume command.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-md2resume/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field limits.
const (
	MaxTemplateLength = 64
	MaxPathLength     = 4096
	MaxPageBudget     = 1_000_000
	MaxTimeout        = 10 * time.Minute
)

// configDirName is the directory under the user config dir searched for
// named configs.
const configDirName = "go-md2resume"

// Config holds all configuration for resume rendering.
type Config struct {
	Template   string       `yaml:"template"`   // Template identifier (empty = default)
	PrintMode  string       `yaml:"printMode"`  // "single" or "paged" (empty = single)
	PageSize   string       `yaml:"pageSize"`   // "a4" or "letter" (empty = a4)
	PageBudget int          `yaml:"pageBudget"` // Characters per page in paged mode (0 = default)
	Timeout    string       `yaml:"timeout"`    // Print timeout, e.g. "45s" (empty = default)
	Output     OutputConfig `yaml:"output"`
	Assets     AssetsConfig `yaml:"assets"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// Validate checks enums, bounds and field lengths.
// Called automatically by LoadConfig, but available for callers that build
// a Config by hand.
func (c *Config) Validate() error {
	if err := validateFieldLength("template", c.Template, MaxTemplateLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if c.PrintMode != "" {
		switch strings.ToLower(c.PrintMode) {
		case "single", "paged":
		default:
			return fmt.Errorf("%w: printMode %q (must be single or paged)", ErrInvalidValue, c.PrintMode)
		}
	}
	if c.PageSize != "" {
		switch strings.ToLower(c.PageSize) {
		case "a4", "letter":
		default:
			return fmt.Errorf("%w: pageSize %q (must be a4 or letter)", ErrInvalidValue, c.PageSize)
		}
	}
	if c.PageBudget < 0 || c.PageBudget > MaxPageBudget {
		return fmt.Errorf("%w: pageBudget must be between 0 and %d, got %d", ErrInvalidValue, MaxPageBudget, c.PageBudget)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value returns 0.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 || d > MaxTimeout {
		return 0, fmt.Errorf("%w: timeout must be positive and at most %s, got %s", ErrInvalidValue, MaxTimeout, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration; every field falls back to
// its built-in default.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.ReadFileStrict(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2resume/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
