package main

// Notes:
// - Printing uses fakePrinter; real Chrome runs only in the root package's
//   integration tests.
// - Tests that call t.Setenv cannot run in parallel.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	md2resume "github.com/alnah/go-md2resume"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake printer and pool
// ---------------------------------------------------------------------------

const fakePDF = "%PDF-1.7 fake"

type fakePrinter struct {
	mu   sync.Mutex
	docs []string
	opts []md2resume.PrintOptions
	err  error
}

func (p *fakePrinter) Print(_ context.Context, document string, opts *md2resume.PrintOptions) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.docs = append(p.docs, document)
	p.opts = append(p.opts, *opts)
	if p.err != nil {
		return nil, p.err
	}
	return []byte(fakePDF), nil
}

func (p *fakePrinter) Close() error { return nil }

type fakePool struct {
	printer  *fakePrinter
	size     int
	timeout  time.Duration
	acquired atomic.Int32
	closed   atomic.Bool
}

func (p *fakePool) Acquire() md2resume.Printer {
	p.acquired.Add(1)
	return p.printer
}

func (p *fakePool) Release(md2resume.Printer) {}
func (p *fakePool) Size() int                 { return p.size }

func (p *fakePool) Close() error {
	p.closed.Store(true)
	return nil
}

type testEnv struct {
	env    *Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pool   *fakePool
}

func newTestEnv(printErr error) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pool:   &fakePool{printer: &fakePrinter{err: printErr}},
	}
	te.env = &Environment{
		Now:    func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) },
		Stdout: te.stdout,
		Stderr: te.stderr,
		NewPool: func(size int, timeout time.Duration) Pool {
			te.pool.size = size
			te.pool.timeout = timeout
			return te.pool
		},
	}
	return te
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

const sampleResume = `# Jane Doe

jane@example.com
Paris, France

## Experience

**Staff Engineer** at Example Corp
Led ==12 engineers== across three teams.

## Skills

Go, SQL, Kubernetes
`

// ---------------------------------------------------------------------------
// TestRunRender - Successful renders
// ---------------------------------------------------------------------------

func TestRunRender_PDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	te := newTestEnv(nil)

	if err := runRender(context.Background(), []string{input, "-p", "letter"}, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	pdfPath := filepath.Join(dir, "jane.pdf")
	if got := readFile(t, pdfPath); got != fakePDF {
		t.Errorf("PDF content = %q", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "jane.html")); !os.IsNotExist(err) {
		t.Error("HTML should not be written without --html")
	}
	if !strings.Contains(te.stdout.String(), "Created "+pdfPath) {
		t.Errorf("stdout = %q", te.stdout.String())
	}
	if !te.pool.closed.Load() {
		t.Error("pool should be closed")
	}

	printer := te.pool.printer
	if len(printer.docs) != 1 {
		t.Fatalf("printed %d documents, want 1", len(printer.docs))
	}
	doc := printer.docs[0]
	for _, want := range []string{"<!DOCTYPE html>", "<title>Jane Doe</title>", `class="resume-page letter single-page"`, "<mark>12 engineers</mark>", ".resume-page-break"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
	if printer.opts[0].PageSize != md2resume.PageSizeLetter || printer.opts[0].Mode != md2resume.PrintModeSingle {
		t.Errorf("print options = %+v", printer.opts[0])
	}
}

func TestRunRender_HTMLOnly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "cv.markdown"), "No heading here\n")
	te := newTestEnv(nil)

	if err := runRender(context.Background(), []string{"--html-only", input}, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	html := readFile(t, filepath.Join(dir, "cv.html"))
	if !strings.Contains(html, "<title>cv</title>") {
		t.Error("title should fall back to the file name")
	}
	if _, err := os.Stat(filepath.Join(dir, "cv.pdf")); !os.IsNotExist(err) {
		t.Error("PDF should not be written with --html-only")
	}
	if n := te.pool.acquired.Load(); n != 0 {
		t.Errorf("acquired %d printers, want 0", n)
	}
}

func TestRunRender_HTMLAndPDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	te := newTestEnv(nil)

	if err := runRender(context.Background(), []string{"--html", input}, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	html := readFile(t, filepath.Join(dir, "jane.html"))
	if html != te.pool.printer.docs[0] {
		t.Error("HTML file should hold the printed document")
	}
	readFile(t, filepath.Join(dir, "jane.pdf"))
}

func TestRunRender_PagedWithBudget(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	md := "# Jane\n\n## One\n\n" + strings.Repeat("a", 400) + "\n\n## Two\n\n" + strings.Repeat("b", 400) + "\n"
	input := writeFile(t, filepath.Join(dir, "jane.md"), md)
	te := newTestEnv(nil)

	args := []string{input, "--mode", "paged", "--page-budget", "500", "--html-only", "-v"}
	if err := runRender(context.Background(), args, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	html := readFile(t, filepath.Join(dir, "jane.html"))
	if n := strings.Count(html, `<div class="resume-page a4">`); n != 2 {
		t.Errorf("found %d pages, want 2", n)
	}
	if !strings.Contains(te.stdout.String(), "2 page(s)") {
		t.Errorf("verbose output should report pages, got %q", te.stdout.String())
	}
	if !strings.Contains(te.stderr.String(), `template "modern", paged mode`) {
		t.Errorf("verbose output should report settings, got %q", te.stderr.String())
	}
}

func TestRunRender_Directory(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(in, "a.md"), "# A\n")
	writeFile(t, filepath.Join(in, "team", "b.md"), "# B\n")
	writeFile(t, filepath.Join(in, "notes.txt"), "ignored")
	te := newTestEnv(nil)

	if err := runRender(context.Background(), []string{in, "-o", out, "-w", "2"}, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	readFile(t, filepath.Join(out, "a.pdf"))
	readFile(t, filepath.Join(out, "team", "b.pdf"))
	if te.pool.size != 2 {
		t.Errorf("pool size = %d, want 2", te.pool.size)
	}
	if !strings.Contains(te.stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q", te.stdout.String())
	}
}

func TestRunRender_Quiet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	te := newTestEnv(nil)

	if err := runRender(context.Background(), []string{"-q", input}, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	if te.stdout.Len() != 0 {
		t.Errorf("quiet mode wrote %q", te.stdout.String())
	}
}

func TestRunRender_TemplateFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	tmplPath := writeFile(t, filepath.Join(dir, "ocean.yaml"), `name: Ocean
styles:
  - selector: h1
    declarations:
      - color: navy
      - fontSize: 2em
`)
	te := newTestEnv(nil)

	if err := runRender(context.Background(), []string{input, "-t", tmplPath, "--html-only"}, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	html := readFile(t, filepath.Join(dir, "jane.html"))
	if !strings.Contains(html, ".resume-container h1 { color: navy; font-size: 2em; ") {
		t.Errorf("custom template CSS missing from %q", html)
	}
}

func TestRunRender_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	out := filepath.Join(dir, "build")
	cfgPath := writeFile(t, filepath.Join(dir, "resume.yaml"), "template: classic\npageSize: letter\ntimeout: 45s\noutput:\n  defaultDir: "+out+"\n")
	te := newTestEnv(nil)

	if err := runRender(context.Background(), []string{input, "-c", cfgPath, "-p", "a4"}, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	readFile(t, filepath.Join(out, "jane.pdf"))
	if te.pool.timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", te.pool.timeout)
	}
	if got := te.pool.printer.opts[0].PageSize; got != md2resume.PageSizeA4 {
		t.Errorf("page size = %q, flag should win over config", got)
	}

	classic, err := md2resume.LookupTemplate("classic")
	if err != nil {
		t.Fatal(err)
	}
	rendered, err := md2resume.Render(context.Background(), md2resume.Input{Markdown: "x", Template: classic, Mode: md2resume.PrintModeSingle})
	if err != nil {
		t.Fatal(err)
	}
	css, _, _ := strings.Cut(rendered.HTML, "</style>")
	if !strings.Contains(te.pool.printer.docs[0], css) {
		t.Error("document should use the classic template from config")
	}
}

func TestRunRender_EnvOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	cfgPath := writeFile(t, filepath.Join(dir, "resume.yaml"), "printMode: single\ntimeout: 45s\n")
	te := newTestEnv(nil)

	t.Setenv("MD2RESUME_CONFIG", cfgPath)
	t.Setenv("MD2RESUME_MODE", "paged")
	t.Setenv("MD2RESUME_TIMEOUT", "90s")
	t.Setenv("MD2RESUME_TYPO", "x")

	if err := runRender(context.Background(), []string{input}, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}
	if got := te.pool.printer.opts[0].Mode; got != md2resume.PrintModePaged {
		t.Errorf("mode = %q, want paged from env", got)
	}
	if te.pool.timeout != 90*time.Second {
		t.Errorf("timeout = %v, want 90s from env", te.pool.timeout)
	}
	if !strings.Contains(te.stderr.String(), "MD2RESUME_TYPO") {
		t.Error("unknown env var should be reported")
	}
}

func TestRunRender_ResolvesImagesAgainstSource(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "cv", "jane.md"), "# Jane\n\n![me](photo.jpg)\n")
	te := newTestEnv(nil)

	if err := runRender(context.Background(), []string{input, "--html-only"}, te.env); err != nil {
		t.Fatalf("runRender() error = %v", err)
	}

	html := readFile(t, filepath.Join(dir, "cv", "jane.html"))
	if !strings.Contains(html, `src="file://`) || !strings.Contains(html, "cv/photo.jpg") {
		t.Errorf("image should resolve next to the resume, got %q", html)
	}
}

// ---------------------------------------------------------------------------
// TestRunRender_Errors - Failure mapping
// ---------------------------------------------------------------------------

func TestRunRender_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	textFile := writeFile(t, filepath.Join(dir, "jane.txt"), "x")
	emptyDir := t.TempDir()

	tests := []struct {
		name         string
		args         []string
		printErr     error
		wantErr      error
		wantCode     int
		wantContains string
	}{
		{name: "no input", args: nil, wantErr: ErrNoInput, wantCode: ExitIO},
		{name: "two inputs", args: []string{input, input}, wantErr: ErrUsage, wantCode: ExitUsage},
		{name: "missing file", args: []string{filepath.Join(dir, "nope.md")}, wantErr: os.ErrNotExist, wantCode: ExitIO},
		{name: "wrong extension", args: []string{textFile}, wantErr: ErrInvalidExtension, wantCode: ExitUsage},
		{name: "no markdown in dir", args: []string{emptyDir}, wantErr: ErrNoMarkdownFiles, wantCode: ExitIO},
		{name: "unknown flag", args: []string{input, "--watermark"}, wantErr: ErrUsage, wantCode: ExitUsage},
		{name: "bad mode", args: []string{input, "-m", "poster"}, wantCode: ExitUsage},
		{name: "bad page size", args: []string{input, "-p", "legal"}, wantCode: ExitUsage},
		{name: "too many workers", args: []string{input, "-w", "99"}, wantErr: ErrInvalidWorkerCount, wantCode: ExitUsage},
		{name: "negative budget", args: []string{input, "--page-budget", "-5"}, wantErr: ErrInvalidPageBudget, wantCode: ExitUsage},
		{name: "bad timeout", args: []string{input, "--timeout", "later"}, wantErr: ErrInvalidTimeout, wantCode: ExitUsage},
		{
			name:         "unknown template",
			args:         []string{input, "-t", "ocean"},
			wantErr:      md2resume.ErrTemplateNotFound,
			wantCode:     ExitUsage,
			wantContains: "available: classic, creative, minimalist, modern, professional",
		},
		{name: "missing template file", args: []string{input, "-t", "./missing.yaml"}, wantErr: os.ErrNotExist, wantCode: ExitIO},
		{name: "missing config", args: []string{input, "-c", "no-such-config-xyz"}, wantCode: ExitUsage, wantContains: "--config"},
		{name: "bad asset path", args: []string{input, "--asset-path", filepath.Join(dir, "nope")}, wantErr: md2resume.ErrInvalidAssetPath, wantCode: ExitUsage},
		{
			name:     "print failure",
			args:     []string{input},
			printErr: md2resume.ErrPDFGeneration,
			wantErr:  md2resume.ErrPDFGeneration,
			wantCode: ExitBrowser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv(tt.printErr)
			err := runRender(context.Background(), tt.args, te.env)
			if err == nil {
				t.Fatal("runRender() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("runRender() error = %v, want %v", err, tt.wantErr)
			}
			if got := exitCodeFor(err); got != tt.wantCode {
				t.Errorf("exitCodeFor(%v) = %d, want %d", err, got, tt.wantCode)
			}
			if tt.wantContains != "" && !strings.Contains(err.Error(), tt.wantContains) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantContains)
			}
		})
	}
}

func TestRunRender_CancelledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, "jane.md"), sampleResume)
	te := newTestEnv(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runRender(ctx, []string{input}, te.env)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("runRender() error = %v, want context.Canceled", err)
	}
	if len(te.pool.printer.docs) != 0 {
		t.Error("nothing should be printed after cancellation")
	}
}

func TestRunRender_Help(t *testing.T) {
	t.Parallel()

	te := newTestEnv(nil)
	if err := runRender(context.Background(), []string{"--help"}, te.env); err != nil {
		t.Errorf("runRender(--help) error = %v", err)
	}
	if !strings.Contains(te.stderr.String(), "Usage: md2resume render") {
		t.Errorf("help output = %q", te.stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeout / TestExtractTitle - Helpers
// ---------------------------------------------------------------------------

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{name: "first h1", markdown: "# Jane Doe\n\n# Other", want: "Jane Doe"},
		{name: "h1 after text", markdown: "intro\n#  Jane  \n", want: "Jane"},
		{name: "h2 only", markdown: "## Skills\n", want: ""},
		{name: "hash without space", markdown: "#hashtag\n", want: ""},
		{name: "empty", markdown: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := extractTitle(tt.markdown); got != tt.want {
				t.Errorf("extractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
