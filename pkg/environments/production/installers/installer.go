package installers

import (
	"context"
	"time"

	"github.com/CoreumFoundation/node-installer/pkg/logging"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
)

// Installer defines the interface for binary installers
type Installer interface {
	// Install downloads, installs and smoke-tests the binary
	Install(ctx context.Context) error

	// BinaryPath is where the binary ends up
	BinaryPath() string
}

// Config holds the settings shared by every installer.
type Config struct {
	// OS and Arch are the normalized platform (linux, amd64).
	OS   string
	Arch string
	// BinDir is the directory binaries are installed into.
	BinDir string
	// Privileged moves binaries with sudo and hands them to User.
	Privileged bool
	User       string
	// DownloadTimeout bounds each download; zero disables the bound.
	DownloadTimeout time.Duration
}

// BaseInstaller provides common functionality for all installers
type BaseInstaller struct {
	cfg    Config
	runner shell.Runner
	logger *logging.ColoredLogger
}

// NewBaseInstaller creates a new base installer with common dependencies
func NewBaseInstaller(cfg Config, runner shell.Runner, logger *logging.ColoredLogger) *BaseInstaller {
	return &BaseInstaller{
		cfg:    cfg,
		runner: runner,
		logger: logger,
	}
}

// BinDir returns the installation directory.
func (b *BaseInstaller) BinDir() string {
	return b.cfg.BinDir
}
