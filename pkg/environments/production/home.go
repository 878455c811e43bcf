package production

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/logging"
	"github.com/CoreumFoundation/node-installer/pkg/prompt"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
)

// HomeRequest describes the data directory to (re)create.
type HomeRequest struct {
	Home      string
	ChainID   string
	Moniker   string
	Overwrite bool
}

// ChainDir is the per-network directory inside home.
func ChainDir(home, chainID string) string {
	return filepath.Join(home, chainID)
}

// AppConfigPath is the app.toml written by `cored init`.
func AppConfigPath(home, chainID string) string {
	return filepath.Join(ChainDir(home, chainID), "config", "app.toml")
}

// HomeInitializer wipes a home directory and regenerates it with `cored init`.
type HomeInitializer struct {
	prompter  *prompt.Prompter
	runner    shell.Runner
	logger    *logging.ColoredLogger
	coredPath string
	dryRun    bool
}

// NewHomeInitializer creates a home initializer that runs the cored binary at coredPath.
func NewHomeInitializer(p *prompt.Prompter, runner shell.Runner, logger *logging.ColoredLogger, coredPath string, dryRun bool) *HomeInitializer {
	return &HomeInitializer{
		prompter:  p,
		runner:    runner,
		logger:    logger,
		coredPath: coredPath,
		dryRun:    dryRun,
	}
}

func confirmMenu(home string) prompt.Menu[bool] {
	m := prompt.YesNo("overwrite",
		fmt.Sprintf("Do you want to initialize the Coreum home directory at '%s'?", home),
		"Yes, proceed with initialization",
		"No, quit",
		"You can skip this confirmation using the --overwrite flag.",
	)
	m.Warning = "All contents of the directory will be deleted and cannot be recovered."
	return m
}

// Initialize confirms (unless req.Overwrite), deletes req.Home and runs
// `cored init`. Declining returns errs.ErrAborted.
func (hi *HomeInitializer) Initialize(ctx context.Context, req HomeRequest) error {
	if !req.Overwrite {
		ok, err := prompt.Select(ctx, hi.prompter, confirmMenu(req.Home), "")
		if err != nil {
			return err
		}
		if !ok {
			hi.prompter.Printf("Exiting the program...\n")
			return errs.ErrAborted
		}
	}

	hi.logger.ComponentInfo(logging.ComponentHome, "Initializing home directory",
		zap.String("home", req.Home),
		zap.String("chain_id", req.ChainID),
		zap.String("moniker", req.Moniker),
	)

	if err := hi.wipe(req.Home); err != nil {
		return err
	}

	cmd := shell.Command{
		Name: hi.coredPath,
		Args: []string{"init", req.Moniker, "-o", "--home", req.Home, "--chain-id", req.ChainID},
	}
	if err := hi.runner.Run(ctx, cmd); err != nil {
		return errs.NewCommandError(errs.CodeCommandFailed,
			fmt.Sprintf("failed to initialize %s (check that the directory is writable by the current user)", req.Home),
			cmd.String(), err)
	}

	hi.logger.ComponentDebug(logging.ComponentHome, "Home directory initialized", zap.String("config", AppConfigPath(req.Home, req.ChainID)))
	return nil
}

func (hi *HomeInitializer) wipe(home string) error {
	if hi.dryRun {
		hi.prompter.Printf("  [dry-run] rm -rf %s\n", home)
		return nil
	}
	if err := os.RemoveAll(home); err != nil {
		return errs.NewCommandError(errs.CodePermissionDenied,
			fmt.Sprintf("failed to delete %s (check directory permissions)", home),
			"rm -rf "+home, err)
	}
	return nil
}
