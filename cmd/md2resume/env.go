package main

import (
	"io"
	"os"
	"time"

	md2resume "github.com/alnah/go-md2resume"
)

// Pool hands out printers for batch rendering.
type Pool interface {
	Acquire() md2resume.Printer
	Release(md2resume.Printer)
	Size() int
	Close() error
}

var _ Pool = (*md2resume.PrinterPool)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	NewPool func(size int, timeout time.Duration) Pool
}

// DefaultEnv returns the production environment backed by headless Chrome.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewPool: func(size int, timeout time.Duration) Pool {
			return md2resume.NewPrinterPool(size, timeout)
		},
	}
}
