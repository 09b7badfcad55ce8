package md2resume

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// PrinterPool manages a pool of Printer instances for parallel printing.
// Each printer has its own browser instance, enabling true parallelism.
// Printers are created lazily on first acquire to avoid startup delay.
type PrinterPool struct {
	size       int
	newPrinter func() Printer
	printers   []Printer
	sem        chan Printer
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewPrinterPool creates a pool with capacity for n Chrome printers, each
// using timeout. Printers are created when acquired, not at pool creation.
func NewPrinterPool(n int, timeout time.Duration) *PrinterPool {
	return newPrinterPool(n, func() Printer { return NewPrinter(timeout) })
}

func newPrinterPool(n int, factory func() Printer) *PrinterPool {
	if n < 1 {
		n = 1
	}

	return &PrinterPool{
		size:       n,
		newPrinter: factory,
		printers:   make([]Printer, 0, n),
		sem:        make(chan Printer, n),
	}
}

// Acquire gets a printer from the pool, creating one if needed.
// Blocks if all printers are in use. Once the pool is closed it returns a
// printer whose Print fails with ErrPoolClosed.
func (p *PrinterPool) Acquire() Printer {
	select {
	case pr, ok := <-p.sem:
		return openOrClosed(pr, ok)
	default:
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return closedPrinter{}
	}
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new printer outside the lock
		pr := p.newPrinter()

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed {
			_ = pr.Close()
			return closedPrinter{}
		}
		p.printers = append(p.printers, pr)
		return pr
	}
	p.mu.Unlock()

	pr, ok := <-p.sem
	return openOrClosed(pr, ok)
}

// Release returns a printer to the pool. It is a no-op once the pool is
// closed. The send happens under the lock so Close cannot close the channel
// in between; it never blocks since the channel holds every created printer.
func (p *PrinterPool) Release(pr Printer) {
	if _, ok := pr.(closedPrinter); ok || pr == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	select {
	case p.sem <- pr:
	default:
	}
}

// Close releases all browser resources.
// Returns an aggregated error if multiple printers fail to close.
func (p *PrinterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	printers := p.printers
	p.mu.Unlock()

	var errs []error
	for _, pr := range printers {
		if err := pr.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *PrinterPool) Size() int {
	return p.size
}

// closedPrinter stands in for a printer acquired from a closed pool.
type closedPrinter struct{}

func (closedPrinter) Print(context.Context, string, *PrintOptions) ([]byte, error) {
	return nil, ErrPoolClosed
}

func (closedPrinter) Close() error { return nil }

func openOrClosed(pr Printer, ok bool) Printer {
	if !ok {
		return closedPrinter{}
	}
	return pr
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
