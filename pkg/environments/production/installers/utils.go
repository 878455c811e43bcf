package installers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/logging"
	"github.com/CoreumFoundation/node-installer/pkg/network"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
)

// Artifact describes one release binary.
type Artifact struct {
	// Name is the executable name inside BinDir and inside the archive.
	Name string
	URLs network.URLTable
	// Archive marks a .tar.gz release holding Name at its root.
	Archive bool
	// SmokeArgs are run against the installed binary to prove it works.
	SmokeArgs []string
}

// DownloadFile downloads a file from a URL to a destination path
func DownloadFile(ctx context.Context, runner shell.Runner, url, dest string, timeout time.Duration) error {
	args := []string{"-q", url, "-O", dest}
	if timeout > 0 {
		args = append(args, fmt.Sprintf("--timeout=%d", int(timeout.Seconds())))
	}
	if err := runner.Run(ctx, shell.Command{Name: "wget", Args: args, Timeout: timeout}); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	return nil
}

// ExtractTarball extracts a tarball to a destination directory
func ExtractTarball(ctx context.Context, runner shell.Runner, tarPath, destDir string) error {
	if err := runner.Run(ctx, shell.Command{Name: "tar", Args: []string{"-xf", tarPath, "-C", destDir}}); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	return nil
}

// Fetch resolves, downloads, unpacks, installs and smoke-tests an artifact.
// It returns the installed path. The URL is resolved before anything is
// downloaded, so an unsupported platform fails without network access.
func (b *BaseInstaller) Fetch(ctx context.Context, a Artifact) (string, error) {
	url, err := a.URLs.Resolve(b.cfg.OS, b.cfg.Arch)
	if err != nil {
		return "", err
	}
	dest := filepath.Join(b.cfg.BinDir, a.Name)

	b.logger.ComponentInfo(logging.ComponentFetcher, "Downloading "+a.Name,
		zap.String("from", url),
		zap.String("to", dest),
	)

	tmpDir, err := os.MkdirTemp("", "coreum-installer-"+a.Name+"-")
	if err != nil {
		return "", errs.Wrapf(err, "failed to create temporary directory for %s", a.Name)
	}
	defer os.RemoveAll(tmpDir)

	download := filepath.Join(tmpDir, a.Name)
	if a.Archive {
		download += ".tar.gz"
	}
	if err := DownloadFile(ctx, b.runner, url, download, b.cfg.DownloadTimeout); err != nil {
		return "", errs.NewCommandError(errs.CodeDownloadFailed, "failed to download "+a.Name, "wget", err)
	}
	if info, err := os.Stat(download); err == nil {
		b.logger.ComponentDebug(logging.ComponentFetcher, "Download complete",
			zap.String("size", humanize.Bytes(uint64(info.Size()))))
	}

	binary := download
	if a.Archive {
		if err := ExtractTarball(ctx, b.runner, download, tmpDir); err != nil {
			return "", errs.NewCommandError(errs.CodeDownloadFailed, "failed to unpack "+a.Name, "tar", err)
		}
		binary = filepath.Join(tmpDir, a.Name)
	}

	if err := b.run(ctx, errs.CodePermissionDenied, "failed to make "+a.Name+" executable",
		shell.Command{Name: "chmod", Args: []string{"755", binary}}); err != nil {
		return "", err
	}

	if err := b.place(ctx, a.Name, binary, dest); err != nil {
		return "", err
	}

	if err := b.run(ctx, errs.CodeSmokeTestFailed, a.Name+" is installed but does not run",
		shell.Command{Name: dest, Args: a.SmokeArgs}); err != nil {
		return "", err
	}

	b.logger.ComponentInfo(logging.ComponentFetcher, "Binary installed", zap.String("path", dest))
	return dest, nil
}

// place moves the binary into BinDir. On the service host BinDir is usually
// root owned, so the move runs through sudo and ownership goes to the operator.
func (b *BaseInstaller) place(ctx context.Context, name, src, dest string) error {
	msg := fmt.Sprintf("failed to install %s into %s (check write permissions or use --binary-path)", name, b.cfg.BinDir)

	if !b.cfg.Privileged {
		return b.run(ctx, errs.CodePermissionDenied, msg, shell.Command{Name: "mv", Args: []string{src, dest}})
	}

	owner := b.cfg.User + ":" + b.cfg.User
	steps := []shell.Command{
		{Name: "sudo", Args: []string{"mv", src, dest}},
		{Name: "sudo", Args: []string{"chown", owner, dest}},
		{Name: "sudo", Args: []string{"chmod", "+x", dest}},
	}
	for _, step := range steps {
		if err := b.run(ctx, errs.CodePermissionDenied, msg, step); err != nil {
			return err
		}
	}
	return nil
}

func (b *BaseInstaller) run(ctx context.Context, code, message string, cmd shell.Command) error {
	if err := b.runner.Run(ctx, cmd); err != nil {
		return errs.NewCommandError(code, message, strings.TrimSpace(cmd.String()), err)
	}
	return nil
}
