package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2resume/internal/config"
)

// envPrefix marks environment variables read by md2resume.
const envPrefix = "MD2RESUME_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MD2RESUME_CONFIG: config file name or path
	Template   string        // MD2RESUME_TEMPLATE: template name or path
	Mode       string        // MD2RESUME_MODE: single, paged
	PageSize   string        // MD2RESUME_PAGE_SIZE: a4, letter
	OutputDir  string        // MD2RESUME_OUTPUT_DIR: default output directory
	Timeout    time.Duration // MD2RESUME_TIMEOUT: print timeout
	Workers    int           // MD2RESUME_WORKERS: parallel browsers
}

// knownEnvVars lists valid MD2RESUME_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2RESUME_CONFIG":     true,
	"MD2RESUME_TEMPLATE":   true,
	"MD2RESUME_MODE":       true,
	"MD2RESUME_PAGE_SIZE":  true,
	"MD2RESUME_OUTPUT_DIR": true,
	"MD2RESUME_TIMEOUT":    true,
	"MD2RESUME_WORKERS":    true,
	"MD2RESUME_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2RESUME_CONFIG"),
		Template:   os.Getenv("MD2RESUME_TEMPLATE"),
		Mode:       os.Getenv("MD2RESUME_MODE"),
		PageSize:   os.Getenv("MD2RESUME_PAGE_SIZE"),
		OutputDir:  os.Getenv("MD2RESUME_OUTPUT_DIR"),
	}

	if timeout := os.Getenv("MD2RESUME_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("MD2RESUME_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2RESUME_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig copies set environment values over the config file values.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Template != "" {
		cfg.Template = env.Template
	}
	if env.Mode != "" {
		cfg.PrintMode = env.Mode
	}
	if env.PageSize != "" {
		cfg.PageSize = env.PageSize
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
}
