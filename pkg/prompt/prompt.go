// Package prompt resolves installer choices from command-line values or
// from line-based interactive input.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
)

// ExitWord ends the installer successfully from any prompt.
const ExitWord = "exit"

const clearSequence = "\033[H\033[2J"

// Prompter reads answers from an input stream and writes prompts to out.
type Prompter struct {
	in      *bufio.Reader
	out     io.Writer
	verbose bool
	clear   func()

	// pending carries a read still in flight after an interrupted prompt.
	pending chan readResult
}

type readResult struct {
	line string
	err  error
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithVerbose echoes every resolved choice.
func WithVerbose(verbose bool) Option {
	return func(p *Prompter) {
		p.verbose = verbose
	}
}

// WithClear replaces the screen clearing function.
func WithClear(clear func()) Option {
	return func(p *Prompter) {
		p.clear = clear
	}
}

// New creates a Prompter. The screen is only cleared when out is a terminal.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	p.clear = func() {
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			fmt.Fprint(out, clearSequence)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Printf writes plain text.
func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Title writes text in the title style followed by a newline.
func (p *Prompter) Title(text string) {
	fmt.Fprintln(p.out, TitleStyle.Render(text))
}

// Error writes text in the error style followed by a newline.
func (p *Prompter) Error(text string) {
	fmt.Fprintln(p.out, ErrorStyle.Render(text))
}

// nextLine waits for the next input line or for ctx to be done. The read
// runs in its own goroutine since a blocked stdin read cannot be cancelled;
// an interrupted read is picked up by the following call.
func (p *Prompter) nextLine(ctx context.Context) (string, error) {
	if p.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := p.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		p.pending = ch
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-p.pending:
		p.pending = nil
		return r.line, r.err
	}
}

// readLine reads one trimmed line. "exit" aborts the installer.
func (p *Prompter) readLine(ctx context.Context, label string) (string, error) {
	if ctx.Err() != nil {
		return "", errs.ErrInterrupted
	}
	fmt.Fprint(p.out, label)

	line, err := p.nextLine(ctx)
	if ctx.Err() != nil {
		fmt.Fprintln(p.out)
		return "", errs.ErrInterrupted
	}
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out)
			return "", errs.ErrInputClosed
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	line = strings.TrimSpace(line)
	if strings.EqualFold(line, ExitWord) {
		fmt.Fprintln(p.out, "Exiting the program...")
		return "", errs.ErrAborted
	}
	return line, nil
}

// Text asks for free-form input until a non-empty line is entered.
func (p *Prompter) Text(ctx context.Context, label, invalid string) (string, error) {
	for {
		line, err := p.readLine(ctx, label)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		p.Error(invalid)
	}
}
