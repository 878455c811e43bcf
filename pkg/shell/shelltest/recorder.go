// Package shelltest provides a recording shell.Runner for tests.
package shelltest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/CoreumFoundation/node-installer/pkg/shell"
)

// Hook runs instead of a recorded command. Returning an error fails the command.
type Hook func(cmd shell.Command) error

// Recorder records every command and optionally simulates its effect.
type Recorder struct {
	mu       sync.Mutex
	commands []shell.Command
	hooks    map[string]Hook
	missing  map[string]bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hooks:   map[string]Hook{},
		missing: map[string]bool{},
	}
}

// On registers a hook for commands whose rendered form starts with prefix.
// The executable is matched by base name, so "cored init" matches
// "/usr/local/bin/cored init ...".
func (r *Recorder) On(prefix string, hook Hook) *Recorder {
	r.hooks[prefix] = hook
	return r
}

// Fail makes commands matching prefix exit non-zero.
func (r *Recorder) Fail(prefix string) *Recorder {
	return r.On(prefix, func(cmd shell.Command) error {
		return fmt.Errorf("%s: exit status 1", cmd.String())
	})
}

// Missing makes LookPath fail for name.
func (r *Recorder) Missing(name string) *Recorder {
	r.missing[name] = true
	return r
}

// Run records cmd and applies the longest matching hook.
func (r *Recorder) Run(_ context.Context, cmd shell.Command) error {
	r.mu.Lock()
	r.commands = append(r.commands, cmd)
	r.mu.Unlock()

	key := short(cmd)
	var best string
	for prefix := range r.hooks {
		if strings.HasPrefix(key, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return nil
	}
	return r.hooks[best](cmd)
}

// LookPath resolves every name except those marked missing.
func (r *Recorder) LookPath(name string) (string, error) {
	if r.missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// Commands returns the recorded commands in short form ("cored init m ...").
func (r *Recorder) Commands() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.commands))
	for _, c := range r.commands {
		out = append(out, short(c))
	}
	return out
}

// Raw returns the recorded commands.
func (r *Recorder) Raw() []shell.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]shell.Command(nil), r.commands...)
}

// Ran reports whether any recorded command starts with prefix.
func (r *Recorder) Ran(prefix string) bool {
	for _, c := range r.Commands() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

func short(cmd shell.Command) string {
	parts := append([]string{filepath.Base(cmd.Name)}, cmd.Args...)
	return strings.Join(parts, " ")
}
