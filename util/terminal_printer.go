package util

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/gosuri/uilive"
	"github.com/mattn/go-isatty"
)

// TerminalPrinter periodically prints a set of outputs. On a terminal the
// lines are rewritten in place, otherwise they are appended.
type TerminalPrinter struct {
	parallelOutputs []*ParallelOutput
	frequency       time.Duration
	doneCh          chan struct{}
	stoppedCh       chan struct{}

	out     io.Writer
	live    bool
	writer  *uilive.Writer
	writers []io.Writer
}

func NewTerminalPrinter(out io.Writer, frequency time.Duration) *TerminalPrinter {
	writer := uilive.New()
	writer.Out = out
	return &TerminalPrinter{
		parallelOutputs: make([]*ParallelOutput, 0),
		frequency:       frequency,
		doneCh:          make(chan struct{}),
		stoppedCh:       make(chan struct{}),

		out:     out,
		live:    IsTerminal(out),
		writer:  writer,
		writers: make([]io.Writer, 0),
	}
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *TerminalPrinter) NewOutput() *ParallelOutput {
	out := NewParallelOutput()
	p.parallelOutputs = append(p.parallelOutputs, out)
	p.writers = append(p.writers, p.writer.Newline())
	return out
}

func (p *TerminalPrinter) Start(ctx context.Context) {
	go func() {
		defer close(p.stoppedCh)
		for {
			select {
			case <-p.doneCh:
				return
			case <-ctx.Done():
				return
			case <-time.After(p.frequency):
				if p.live {
					p.print()
				}
			}
		}
	}()
}

// Stop halts the periodic printing and prints the final state of every output
func (p *TerminalPrinter) Stop() {
	close(p.doneCh)
	<-p.stoppedCh
	p.print()
}

func (p *TerminalPrinter) print() {
	if !p.live {
		for _, output := range p.parallelOutputs {
			fmt.Fprintln(p.out, output.Get())
		}
		return
	}
	for i, output := range p.parallelOutputs {
		fmt.Fprint(p.writers[i], output.Get()+"\n")
	}
	p.writer.Flush()
}

// PARALLEL OUTPUT
// used to update and print experiment outputs
type ParallelOutput struct {
	mu        *sync.Mutex
	printable string
}

func NewParallelOutput() *ParallelOutput {
	return &ParallelOutput{
		mu:        new(sync.Mutex),
		printable: "",
	}
}

// Set the output string (blocking)
func (p *ParallelOutput) Set(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printable = s
}

// Try to set the output string (non-blocking)
func (p *ParallelOutput) TrySet(s string) bool {
	success := p.mu.TryLock()
	if success {
		defer p.mu.Unlock()
		p.printable = s
		return true
	}
	return false
}

// Get the output string (blocking)
func (p *ParallelOutput) Get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.printable
}
