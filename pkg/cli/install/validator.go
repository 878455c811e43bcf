package install

import (
	"strings"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
)

// Validator validates install command inputs
type Validator struct {
	opts *Options
}

// NewValidator creates a new validator
func NewValidator(opts *Options) *Validator {
	return &Validator{opts: opts}
}

// ValidateFlags checks every preset answer before the first prompt, so a bad
// flag fails the run without asking anything.
func (v *Validator) ValidateFlags() error {
	if v.opts.Install != "" {
		if _, err := installMenu().Parse(v.opts.Install); err != nil {
			return err
		}
	}
	if v.opts.Network != "" {
		if _, err := networkMenu().Parse(v.opts.Network); err != nil {
			return err
		}
	}
	if v.opts.Pruning != "" {
		if _, err := pruningMenu().Parse(v.opts.Pruning); err != nil {
			return err
		}
	}

	if v.opts.Home != "" && strings.TrimSpace(v.opts.Home) == "" {
		return errs.NewValidationError("home", "home must not be blank", v.opts.Home)
	}
	if v.opts.Moniker != "" && strings.TrimSpace(v.opts.Moniker) == "" {
		return errs.NewValidationError("moniker", "moniker must not be blank", v.opts.Moniker)
	}
	if strings.TrimSpace(v.opts.BinaryPath) == "" {
		return errs.NewValidationError("binary-path", "binary path must not be empty", v.opts.BinaryPath)
	}
	if v.opts.DownloadTimeout < 0 {
		return errs.NewValidationError("download-timeout", "download timeout must not be negative", v.opts.DownloadTimeout)
	}
	return nil
}

func joinProblems(problems []error) error {
	msgs := make([]string, 0, len(problems))
	for _, p := range problems {
		msgs = append(msgs, p.Error())
	}
	return errs.NewValidationError("config", strings.Join(msgs, "; "), nil)
}
