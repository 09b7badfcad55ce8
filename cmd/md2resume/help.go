package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2resume <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render     Render markdown resumes to PDF or HTML")
	fmt.Fprintln(w, "  templates  List available templates")
	fmt.Fprintln(w, "  doctor     Check Chrome and environment setup")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Shortcut: 'md2resume resume.md' is the same as 'md2resume render resume.md'.")
	fmt.Fprintln(w, "Run 'md2resume help <command>' for details on a specific command.")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2resume render <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown resumes with a template and print them to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory of .md files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (.pdf) or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel browsers (0 = auto)")
	fmt.Fprintln(w, "      --timeout <d>         Print timeout per resume (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Layout:")
	fmt.Fprintln(w, "  -t, --template <s>        Template name or YAML file (default: modern)")
	fmt.Fprintln(w, "  -m, --mode <s>            single: one self-scaling page (default)")
	fmt.Fprintln(w, "                            paged: split at level-2 headings")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: a4 (default), letter")
	fmt.Fprintln(w, "      --page-budget <n>     Characters per page in paged mode (default: 2500)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates/ and styles/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --html                Write HTML alongside PDF")
	fmt.Fprintln(w, "      --html-only           Write HTML only, skip PDF")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2RESUME_CONFIG, MD2RESUME_TEMPLATE, MD2RESUME_MODE, MD2RESUME_PAGE_SIZE,")
	fmt.Fprintln(w, "  MD2RESUME_OUTPUT_DIR, MD2RESUME_TIMEOUT, MD2RESUME_WORKERS")
	fmt.Fprintln(w, "  Flags override environment, environment overrides the config file.")
}

// printTemplatesUsage prints usage for the templates command.
func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2resume templates [--asset-path <dir>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List built-in templates, plus custom ones under <dir>/templates/.")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2resume doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check Chrome, container/CI settings, templates and temp directory.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "templates":
		printTemplatesUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2resume version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2resume help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return nil
}
