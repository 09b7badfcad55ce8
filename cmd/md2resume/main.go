package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"

	md2resume "github.com/alnah/go-md2resume"
	"github.com/alnah/go-md2resume/internal/fileutil"
	"github.com/alnah/go-md2resume/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommand names.
var commands = []string{"render", "templates", "doctor", "version", "help"}

func main() {
	env := DefaultEnv()

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	if hasVerboseFlag(os.Args) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()
	os.Exit(code)
}

// runMain dispatches to a subcommand and maps its error to an exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && fileutil.IsMarkdown(cmd) {
		cmd, rest = "render", args[1:]
	}

	var err error
	switch cmd {
	case "render":
		err = runRender(ctx, rest, env)
	case "templates":
		err = runTemplates(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "md2resume %s\n", Version)
	case "help", "-h", "--help":
		err = runHelp(rest, env)
	default:
		printUsage(env.Stderr)
		err = fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}

	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether name is a known subcommand.
func isCommand(name string) bool {
	return slices.Contains(commands, name)
}

// hasVerboseFlag reports whether -v or --verbose appears in args.
func hasVerboseFlag(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}

// hintFor returns a hint for failures whose fix lies outside the input.
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2resume.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, md2resume.ErrPageLoad):
		return hints.ForTimeout()
	default:
		return ""
	}
}
