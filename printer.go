package md2resume

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2resume/internal/fileutil"
	"github.com/alnah/go-md2resume/internal/process"
)

// DefaultPrintTimeout bounds page load, scaling and PDF generation.
const DefaultPrintTimeout = 30 * time.Second

// settledSelector matches a single-page container once its scaling script
// has stopped.
const settledSelector = ".resume-container[data-scale-settled]"

// PrintOptions controls paper size and how long to wait for layout.
type PrintOptions struct {
	PageSize PageSize  // Paper size (empty = DefaultPageSize)
	Mode     PrintMode // PrintModeSingle waits for the scaling script to settle
}

// Printer turns a standalone HTML document into PDF bytes.
type Printer interface {
	Print(ctx context.Context, document string, opts *PrintOptions) ([]byte, error)
	Close() error
}

// pdfRenderer prints an HTML file on disk. Tests substitute a fake.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *PrintOptions) ([]byte, error)
	Close() error
}

// ChromePrinter prints documents with headless Chrome.
// Create with NewPrinter and Close when done. Not safe for concurrent use;
// use PrinterPool for parallel printing.
type ChromePrinter struct {
	renderer pdfRenderer
}

// NewPrinter creates a ChromePrinter. The browser starts on first Print.
// A timeout <= 0 selects DefaultPrintTimeout.
func NewPrinter(timeout time.Duration) *ChromePrinter {
	if timeout <= 0 {
		timeout = DefaultPrintTimeout
	}
	return &ChromePrinter{renderer: &rodRenderer{timeout: timeout}}
}

// Print writes document to a temporary file and prints it.
func (p *ChromePrinter) Print(ctx context.Context, document string, opts *PrintOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(document, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return p.renderer.RenderFromFile(ctx, tmpPath, opts)
}

// Close shuts the browser down.
func (p *ChromePrinter) Close() error {
	return p.renderer.Close()
}

// rodRenderer prints through go-rod. Without a local Chrome, rod downloads
// Chromium on first launch.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := newLauncher(os.Getenv)
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		r.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return nil
}

// newLauncher applies ROD_BROWSER_BIN and the sandbox switches. Chrome's
// sandbox cannot start in most CI runners and containers.
func newLauncher(getenv func(string) string) *launcher.Launcher {
	l := launcher.New()
	bin := getenv("ROD_BROWSER_BIN")
	if bin != "" {
		l = l.Bin(bin)
	}
	if getenv("CI") == "true" || getenv("ROD_NO_SANDBOX") == "1" || bin != "" {
		l = l.NoSandbox(true)
	}
	return l
}

// killLauncher terminates Chrome and its helper processes, then removes the
// launcher's profile directory.
func (r *rodRenderer) killLauncher() {
	if r.launcher == nil {
		return
	}
	if pid := r.launcher.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	r.launcher.Kill()
	r.launcher.Cleanup()
	r.launcher = nil
}

func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	r.killLauncher()
	return err
}

// RenderFromFile loads filePath in a new tab, waits for layout and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *PrintOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	page, err := r.openPage(ctx, filePath, opts)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	reader, err := page.Context(ctx).PDF(buildPDFOptions(opts))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

// openPage opens filePath and waits until it is ready to print. Page load
// and, in single mode, the scaling script share one budget bounded by ctx.
// The caller holds r.mu and closes the page.
func (r *rodRenderer) openPage(ctx context.Context, filePath string, opts *PrintOptions) (*rod.Page, error) {
	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	budget, err := printBudget(ctx, r.timeout)
	if err != nil {
		return nil, err
	}
	waitCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	waiting := page.Context(waitCtx)
	err = waiting.WaitLoad()
	if err == nil && opts != nil && opts.Mode == PrintModeSingle {
		if _, err = waiting.Element(settledSelector); err != nil {
			err = fmt.Errorf("waiting for single-page scaling: %v", err)
		}
	}
	if err != nil {
		_ = page.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}
	return page, nil
}

// printBudget is the time left before ctx's deadline, or fallback when ctx
// has none.
func printBudget(ctx context.Context, fallback time.Duration) (time.Duration, error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback, nil
	}
	left := time.Until(deadline)
	if left <= 0 {
		return 0, context.DeadlineExceeded
	}
	return left, nil
}

// buildPDFOptions sizes the paper to the page boxes. Margins are zero since
// each page box carries its own padding.
func buildPDFOptions(opts *PrintOptions) *proto.PagePrintToPDF {
	size := DefaultPageSize
	if opts != nil && opts.PageSize != "" {
		size = opts.PageSize
	}
	width, height := size.Dimensions()

	return &proto.PagePrintToPDF{
		PaperWidth:        floatPtr(width),
		PaperHeight:       floatPtr(height),
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
