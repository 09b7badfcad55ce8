package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	md2resume "github.com/alnah/go-md2resume"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no args", args: []string{"md2resume"}, wantCode: ExitUsage, wantStderr: "Usage: md2resume"},
		{name: "version", args: []string{"md2resume", "version"}, wantCode: ExitSuccess, wantStdout: "md2resume dev"},
		{name: "version flag", args: []string{"md2resume", "--version"}, wantCode: ExitSuccess, wantStdout: "md2resume dev"},
		{name: "help", args: []string{"md2resume", "help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help flag", args: []string{"md2resume", "-h", "render"}, wantCode: ExitSuccess, wantStdout: "Usage: md2resume render"},
		{name: "templates", args: []string{"md2resume", "templates"}, wantCode: ExitSuccess, wantStdout: "professional"},
		{name: "unknown command", args: []string{"md2resume", "convert"}, wantCode: ExitUsage, wantStderr: `unknown command "convert"`},
		{name: "render without input", args: []string{"md2resume", "render"}, wantCode: ExitIO, wantStderr: "error: no input specified"},
		{name: "doctor bad flag", args: []string{"md2resume", "doctor", "--xml"}, wantCode: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(nil)
			if got := runMain(context.Background(), tt.args, te.env); got != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", got, tt.wantCode, te.stderr.String())
			}
			if !strings.Contains(te.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want %q", te.stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", te.stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunMain_ImplicitRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	te := newTestEnv(nil)

	code := runMain(context.Background(), []string{"md2resume", input, "--html-only"}, te.env)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, te.stderr.String())
	}
	readFile(t, filepath.Join(dir, "jane.html"))
}

func TestRunMain_BrowserFailureHint(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	te := newTestEnv(fmt.Errorf("%w: no chrome", md2resume.ErrBrowserConnect))

	code := runMain(context.Background(), []string{"md2resume", "render", input}, te.env)
	if code != ExitBrowser {
		t.Errorf("runMain() = %d, want %d", code, ExitBrowser)
	}
	if !strings.Contains(te.stderr.String(), "md2resume doctor") {
		t.Errorf("stderr should point at doctor, got %q", te.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestHintFor / TestHasVerboseFlag
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "browser", err: md2resume.ErrBrowserConnect, want: "doctor"},
		{name: "deadline", err: context.DeadlineExceeded, want: "--timeout"},
		{name: "page load", err: fmt.Errorf("x: %w", md2resume.ErrPageLoad), want: "--timeout"},
		{name: "other", err: errors.New("boom"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{args: []string{"md2resume", "render", "-v"}, want: true},
		{args: []string{"md2resume", "--verbose"}, want: true},
		{args: []string{"md2resume", "render", "-q"}, want: false},
	}

	for _, tt := range tests {
		if got := hasVerboseFlag(tt.args); got != tt.want {
			t.Errorf("hasVerboseFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
