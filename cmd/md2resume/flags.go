package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// layoutFlags holds template and page layout flags.
type layoutFlags struct {
	template   string
	mode       string
	pageSize   string
	pageBudget int
	assetPath  string
}

// outputFlags holds output mode flags.
type outputFlags struct {
	html     bool // Write HTML alongside PDF
	htmlOnly bool // Write HTML only, skip the browser
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common     commonFlags
	output     string
	workers    int
	timeout    string
	layout     layoutFlags
	outputMode outputFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addLayoutFlags adds template and layout flags to a FlagSet.
func addLayoutFlags(fs *flag.FlagSet, f *layoutFlags) {
	fs.StringVarP(&f.template, "template", "t", "", "template name or YAML file path")
	fs.StringVarP(&f.mode, "mode", "m", "", "print mode: single, paged")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: a4, letter")
	fs.IntVar(&f.pageBudget, "page-budget", 0, "characters per page in paged mode (0 = default)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addOutputFlags adds output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVar(&f.html, "html", false, "write HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel browsers (0 = auto)")
	fs.StringVar(&f.timeout, "timeout", "", "print timeout per resume (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addLayoutFlags(fs, &f.layout)
	addOutputFlags(fs, &f.outputMode)

	fs.Usage = func() { printRenderUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
