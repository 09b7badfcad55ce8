package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/hints"
)

// runTemplates lists the templates available to render, built-in and custom.
func runTemplates(args []string, env *Environment) error {
	fs := flag.NewFlagSet("templates", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	assetPath := fs.String("asset-path", "", "custom asset directory")
	fs.Usage = func() { printTemplatesUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	loader, err := md2resume.NewAssetLoader(*assetPath)
	if err != nil {
		return fmt.Errorf("%w%s", err, hints.ForAssetPath())
	}
	return listTemplates(env.Stdout, loader)
}

// listTemplates writes one "id  name" row per template.
func listTemplates(w io.Writer, loader md2resume.AssetLoader) error {
	ids, err := loader.ListTemplates()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\t")
	for _, id := range ids {
		tmpl, err := loader.LoadTemplate(id)
		if err != nil {
			return fmt.Errorf("template %q: %w", id, err)
		}
		marker := ""
		if id == md2resume.DefaultTemplate {
			marker = "(default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", id, tmpl.Name, marker)
	}
	return tw.Flush()
}
