package installers

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/logging"
	"github.com/CoreumFoundation/node-installer/pkg/network"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
)

// CosmovisorBinary is the supervisor executable name.
const CosmovisorBinary = "cosmovisor"

// CosmovisorInstaller handles cosmovisor installation
type CosmovisorInstaller struct {
	*BaseInstaller
	urls network.URLTable
}

// NewCosmovisorInstaller creates a new cosmovisor installer
func NewCosmovisorInstaller(base *BaseInstaller) *CosmovisorInstaller {
	return &CosmovisorInstaller{
		BaseInstaller: base,
		urls:          network.CosmovisorURLs,
	}
}

// Install downloads the cosmovisor archive and checks that `cosmovisor help` runs.
func (ci *CosmovisorInstaller) Install(ctx context.Context) error {
	_, err := ci.Fetch(ctx, Artifact{
		Name:      CosmovisorBinary,
		URLs:      ci.urls,
		Archive:   true,
		SmokeArgs: []string{"help"},
	})
	return err
}

// BinaryPath returns the installed cosmovisor path.
func (ci *CosmovisorInstaller) BinaryPath() string {
	return filepath.Join(ci.cfg.BinDir, CosmovisorBinary)
}

// DaemonEnv is the environment cosmovisor needs to find the daemon.
func DaemonEnv(daemonHome string) []string {
	return []string{
		"DAEMON_NAME=" + CoredBinary,
		"DAEMON_HOME=" + daemonHome,
	}
}

// Init lays out the cosmovisor directory under daemonHome with coredPath as
// the genesis binary.
func (ci *CosmovisorInstaller) Init(ctx context.Context, daemonHome, coredPath string) error {
	ci.logger.ComponentInfo(logging.ComponentFetcher, "Setting up cosmovisor directory", zap.String("daemon_home", daemonHome))

	cmd := shell.Command{
		Name: ci.BinaryPath(),
		Args: []string{"init", coredPath},
		Env:  DaemonEnv(daemonHome),
	}
	if err := ci.runner.Run(ctx, cmd); err != nil {
		return errs.NewCommandError(errs.CodeCommandFailed, "failed to initialize cosmovisor", cmd.String(), err)
	}
	return nil
}
