// Package shell runs the external programs the installer drives: wget, tar,
// sudo, systemctl and the installed daemons themselves.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/CoreumFoundation/node-installer/pkg/logging"
)

// Command is a fixed argument vector plus the environment it runs in.
type Command struct {
	Name string
	Args []string
	// Env is appended to the installer's own environment.
	Env []string
	Dir string
	// Timeout bounds the command; zero means only the parent context applies.
	Timeout time.Duration
	// Stdout receives the command's standard output when set.
	Stdout io.Writer
}

// String renders the command the way an operator would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Env)+len(c.Args)+1)
	parts = append(parts, c.Env...)
	parts = append(parts, c.Name)
	parts = append(parts, c.Args...)
	return strings.Join(parts, " ")
}

// Runner executes commands. Any non-zero exit is an error.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	logger *logging.ColoredLogger
}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner(logger *logging.ColoredLogger) *ExecRunner {
	return &ExecRunner{logger: logger}
}

// Run executes cmd and waits for it. Stderr is captured and attached to the
// returned error.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) error {
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	r.logger.ComponentDebug(logging.ComponentShell, "Running command", zap.String("cmd", cmd.String()))

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}
	var stderr bytes.Buffer
	c.Stderr = &stderr
	if cmd.Stdout != nil {
		c.Stdout = cmd.Stdout
	}

	err := c.Run()
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: timed out after %s", cmd.String(), cmd.Timeout)
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("%s: %w: %s", cmd.String(), err, msg)
	}
	return fmt.Errorf("%s: %w", cmd.String(), err)
}

// LookPath resolves an executable on PATH.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// DryRunRunner prints commands instead of running them.
type DryRunRunner struct {
	out io.Writer
}

// NewDryRunRunner creates a runner that only reports what it would do.
func NewDryRunRunner(out io.Writer) *DryRunRunner {
	return &DryRunRunner{out: out}
}

// Run prints cmd.
func (r *DryRunRunner) Run(_ context.Context, cmd Command) error {
	fmt.Fprintf(r.out, "  [dry-run] %s\n", cmd.String())
	return nil
}

// LookPath never fails in dry-run mode.
func (r *DryRunRunner) LookPath(name string) (string, error) {
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	return name, nil
}
