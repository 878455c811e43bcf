package production

import (
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/network"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
)

// ServiceHostOS is the only OS where binaries are moved with sudo and systemd
// units are installed.
const ServiceHostOS = "linux"

// Platform is the normalized host platform used to pick release artifacts.
type Platform struct {
	OS      string // linux, darwin, ...
	Arch    string // amd64, arm64
	Machine string // raw machine name, e.g. x86_64
}

// IsServiceHost reports whether the platform manages services with systemd.
func (p Platform) IsServiceHost() bool {
	return p.OS == ServiceHostOS
}

func (p Platform) String() string {
	return p.OS + "/" + p.Arch
}

// NewPlatform normalizes raw OS and machine names.
func NewPlatform(rawOS, machine string) (Platform, error) {
	arch, err := network.NormalizeArch(machine)
	if err != nil {
		return Platform{}, err
	}
	return Platform{
		OS:      network.NormalizeOS(rawOS),
		Arch:    arch,
		Machine: machine,
	}, nil
}

// ArchitectureDetector detects the host platform
type ArchitectureDetector struct{}

// Detect returns the normalized platform of the running host.
func (ad *ArchitectureDetector) Detect() (Platform, error) {
	m, err := machine()
	if err != nil || m == "" {
		m = runtime.GOARCH
	}
	return NewPlatform(runtime.GOOS, m)
}

// Dependency represents an external binary dependency
type Dependency struct {
	Name        string
	Command     string
	InstallHint string
}

// DependencyChecker validates external tool availability
type DependencyChecker struct {
	runner shell.Runner
}

// NewDependencyChecker creates a new checker
func NewDependencyChecker(runner shell.Runner) *DependencyChecker {
	return &DependencyChecker{runner: runner}
}

// RequiredDependencies lists the tools a run needs. tar is only needed when
// cosmovisor may be installed, sudo only on the service host.
func RequiredDependencies(platform Platform, mayInstallCosmovisor bool) []Dependency {
	deps := []Dependency{
		{Name: "wget", Command: "wget", InstallHint: "Install with: apt-get install wget"},
	}
	if mayInstallCosmovisor {
		deps = append(deps, Dependency{Name: "tar", Command: "tar", InstallHint: "Install with: apt-get install tar"})
	}
	if platform.IsServiceHost() {
		deps = append(deps, Dependency{Name: "sudo", Command: "sudo", InstallHint: "Install with: apt-get install sudo"})
	}
	return deps
}

// Check validates that every dependency resolves on PATH.
func (dc *DependencyChecker) Check(deps []Dependency) ([]Dependency, error) {
	var missing []Dependency
	for _, dep := range deps {
		if _, err := dc.runner.LookPath(dep.Command); err != nil {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		var b strings.Builder
		b.WriteString("missing required dependencies:\n")
		for _, dep := range missing {
			fmt.Fprintf(&b, "  - %s (%s): %s\n", dep.Name, dep.Command, dep.InstallHint)
		}
		return missing, errs.New(errs.CodeValidation, strings.TrimSuffix(b.String(), "\n"))
	}

	return nil, nil
}

// OperatorUser returns the login name the installer runs for. $USER wins so
// that `sudo -E` keeps the invoking operator.
func OperatorUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "root"
}
