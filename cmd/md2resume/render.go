package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/assets"
	"github.com/alnah/go-md2resume/internal/config"
	"github.com/alnah/go-md2resume/internal/fileutil"
	"github.com/alnah/go-md2resume/internal/hints"
)

// Sentinel errors for the render command.
var (
	ErrUsage             = errors.New("invalid usage")
	ErrNoInput           = errors.New("no input specified")
	ErrReadMarkdown      = errors.New("failed to read markdown file")
	ErrWritePDF          = errors.New("failed to write PDF file")
	ErrWriteHTML         = errors.New("failed to write HTML file")
	ErrInvalidTimeout    = errors.New("invalid timeout")
	ErrInvalidPageBudget = errors.New("invalid page budget")
)

// renderParams groups settings shared by every file in a batch.
type renderParams struct {
	renderer   *md2resume.Renderer
	template   *md2resume.Template
	mode       md2resume.PrintMode
	pageSize   md2resume.PageSize
	pageCSS    string
	htmlOutput bool
	htmlOnly   bool
}

// runRender orchestrates the render command.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	if err := validateWorkers(flags.workers); err != nil {
		return err
	}
	if flags.layout.pageBudget < 0 {
		return fmt.Errorf("%w: %d (must be > 0, 0 means default)", ErrInvalidPageBudget, flags.layout.pageBudget)
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positional)
	if err != nil {
		return err
	}
	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}

	params, err := buildRenderParams(cfg, flags)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	poolSize := min(md2resume.ResolvePoolSize(workers), len(files))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendering %d file(s) with %d worker(s), template %q, %s mode\n",
			len(files), poolSize, params.template.ID, params.mode)
	}

	pool := env.NewPool(poolSize, timeout)
	defer func() { _ = pool.Close() }()

	results := renderBatch(ctx, pool, files, params)
	return reportResults(results, flags.common.quiet, flags.common.verbose, env)
}

// loadConfig loads the named config, falling back to MD2RESUME_CONFIG.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(nil))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *renderFlags, cfg *config.Config) {
	if flags.layout.template != "" {
		cfg.Template = flags.layout.template
	}
	if flags.layout.mode != "" {
		cfg.PrintMode = flags.layout.mode
	}
	if flags.layout.pageSize != "" {
		cfg.PageSize = flags.layout.pageSize
	}
	if flags.layout.pageBudget > 0 {
		cfg.PageBudget = flags.layout.pageBudget
	}
	if flags.layout.assetPath != "" {
		cfg.Assets.BasePath = flags.layout.assetPath
	}
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
}

// resolveTimeout returns the print timeout. The flag wins over the config;
// 0 selects the printer default.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue == "" {
		return cfg.TimeoutDuration()
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// resolveInputPath returns the single positional input.
func resolveInputPath(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", fmt.Errorf("%w: pass a markdown file or directory", ErrNoInput)
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}
}

// buildRenderParams resolves the template, layout and page stylesheet.
func buildRenderParams(cfg *config.Config, flags *renderFlags) (*renderParams, error) {
	mode := md2resume.PrintModeSingle
	if cfg.PrintMode != "" {
		m, err := md2resume.ParsePrintMode(cfg.PrintMode)
		if err != nil {
			return nil, fmt.Errorf("%w%s", err, hints.ForPrintMode())
		}
		mode = m
	}

	pageSize := md2resume.DefaultPageSize
	if cfg.PageSize != "" {
		p, err := md2resume.ParsePageSize(cfg.PageSize)
		if err != nil {
			return nil, err
		}
		pageSize = p
	}

	loader, err := md2resume.NewAssetLoader(cfg.Assets.BasePath)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForAssetPath())
	}

	tmpl, err := resolveTemplate(cfg.Template, loader)
	if err != nil {
		return nil, err
	}

	pageCSS, err := loader.LoadStyle(md2resume.PageStyle)
	if err != nil {
		return nil, fmt.Errorf("loading page style: %w", err)
	}

	var opts []md2resume.Option
	if cfg.PageBudget > 0 {
		opts = append(opts, md2resume.WithPageBudget(cfg.PageBudget))
	}

	return &renderParams{
		renderer:   md2resume.NewRenderer(opts...),
		template:   tmpl,
		mode:       mode,
		pageSize:   pageSize,
		pageCSS:    pageCSS,
		htmlOutput: flags.outputMode.html,
		htmlOnly:   flags.outputMode.htmlOnly,
	}, nil
}

// resolveTemplate loads a template by name through the asset loader, or
// parses a YAML file when nameOrPath looks like a path.
func resolveTemplate(nameOrPath string, loader md2resume.AssetLoader) (*md2resume.Template, error) {
	if nameOrPath == "" {
		nameOrPath = md2resume.DefaultTemplate
	}

	if fileutil.IsFilePath(nameOrPath) {
		data, err := os.ReadFile(nameOrPath) // #nosec G304 -- user-provided template path
		if err != nil {
			return nil, fmt.Errorf("reading template: %w", err)
		}
		id := strings.TrimSuffix(filepath.Base(nameOrPath), filepath.Ext(nameOrPath))
		tmpl, err := assets.ParseTemplate(id, data)
		if err != nil {
			if errors.Is(err, assets.ErrDuplicateSelector) {
				return nil, fmt.Errorf("%w: %v", md2resume.ErrDuplicateSelector, err)
			}
			return nil, fmt.Errorf("%w: %v", md2resume.ErrTemplateParse, err)
		}
		return tmpl, nil
	}

	tmpl, err := loader.LoadTemplate(nameOrPath)
	if err != nil {
		if errors.Is(err, md2resume.ErrTemplateNotFound) {
			available, _ := loader.ListTemplates()
			return nil, fmt.Errorf("%w%s", err, hints.ForTemplateNotFound(available))
		}
		return nil, err
	}
	return tmpl, nil
}
