package installers

import (
	"context"
	"path/filepath"

	"github.com/CoreumFoundation/node-installer/pkg/network"
)

// CoredBinary is the node daemon executable name.
const CoredBinary = "cored"

// CoredInstaller installs the cored release for one network
type CoredInstaller struct {
	*BaseInstaller
	profile network.Profile
}

// NewCoredInstaller creates a new cored installer
func NewCoredInstaller(base *BaseInstaller, profile network.Profile) *CoredInstaller {
	return &CoredInstaller{
		BaseInstaller: base,
		profile:       profile,
	}
}

// Install downloads cored and checks that `cored version` runs. An existing
// binary is overwritten.
func (ci *CoredInstaller) Install(ctx context.Context) error {
	_, err := ci.Fetch(ctx, Artifact{
		Name:      CoredBinary,
		URLs:      ci.profile.BinaryURLs,
		SmokeArgs: []string{"version"},
	})
	return err
}

// BinaryPath returns the installed cored path.
func (ci *CoredInstaller) BinaryPath() string {
	return filepath.Join(ci.cfg.BinDir, CoredBinary)
}
