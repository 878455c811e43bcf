package production

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/CoreumFoundation/node-installer/pkg/config"
	"github.com/CoreumFoundation/node-installer/pkg/environments/templates"
	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/logging"
	"github.com/CoreumFoundation/node-installer/pkg/prompt"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
)

// Service names
const (
	ServiceCored      = "cored"
	ServiceCosmovisor = "cosmovisor"
	serviceJournald   = "systemd-journald"
)

// SystemdServiceGenerator generates systemd unit files
type SystemdServiceGenerator struct {
	binDir string
	user   string
}

// NewSystemdServiceGenerator creates a new service generator
func NewSystemdServiceGenerator(binDir, user string) *SystemdServiceGenerator {
	return &SystemdServiceGenerator{
		binDir: binDir,
		user:   user,
	}
}

// GenerateCoredService generates the unit running cored directly
func (ssg *SystemdServiceGenerator) GenerateCoredService(home string) (string, error) {
	return templates.RenderCoredService(templates.SystemdCoredData{
		User:      ssg.user,
		CoredPath: filepath.Join(ssg.binDir, "cored"),
		Home:      home,
	})
}

// GenerateCosmovisorService generates the unit running cored under cosmovisor
func (ssg *SystemdServiceGenerator) GenerateCosmovisorService(home, chainID string) (string, error) {
	return templates.RenderCosmovisorService(templates.SystemdCosmovisorData{
		User:           ssg.user,
		CosmovisorPath: filepath.Join(ssg.binDir, "cosmovisor"),
		Home:           home,
		DaemonHome:     ChainDir(home, chainID),
	})
}

// SystemdController manages systemd service operations
type SystemdController struct {
	runner     shell.Runner
	systemdDir string
}

// NewSystemdController creates a new controller writing units into systemdDir
func NewSystemdController(runner shell.Runner, systemdDir string) *SystemdController {
	if systemdDir == "" {
		systemdDir = config.DefaultSystemdDir
	}
	return &SystemdController{
		runner:     runner,
		systemdDir: systemdDir,
	}
}

// UnitPath returns the installed path of a service unit.
func (sc *SystemdController) UnitPath(name string) string {
	return filepath.Join(sc.systemdDir, name+".service")
}

// WriteServiceUnit stages content in a temporary file and moves it into place with sudo
func (sc *SystemdController) WriteServiceUnit(ctx context.Context, name, content string) error {
	tmp, err := os.CreateTemp("", name+"-*.service")
	if err != nil {
		return errs.Wrapf(err, "failed to stage unit file %s", name)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return errs.Wrapf(err, "failed to stage unit file %s", name)
	}
	if err := tmp.Close(); err != nil {
		return errs.Wrapf(err, "failed to stage unit file %s", name)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return errs.Wrapf(err, "failed to stage unit file %s", name)
	}

	cmd := shell.Command{Name: "sudo", Args: []string{"mv", tmp.Name(), sc.UnitPath(name)}}
	if err := sc.runner.Run(ctx, cmd); err != nil {
		return errs.NewCommandError(errs.CodePermissionDenied,
			fmt.Sprintf("failed to write unit file %s", sc.UnitPath(name)), cmd.String(), err)
	}
	return nil
}

// DaemonReload reloads the systemd daemon
func (sc *SystemdController) DaemonReload(ctx context.Context) error {
	return sc.systemctl(ctx, "failed to reload systemd daemon", "daemon-reload")
}

// RestartService restarts a service
func (sc *SystemdController) RestartService(ctx context.Context, name string) error {
	return sc.systemctl(ctx, fmt.Sprintf("failed to restart service %s", name), "restart", name)
}

func (sc *SystemdController) systemctl(ctx context.Context, message string, args ...string) error {
	cmd := shell.Command{Name: "sudo", Args: append([]string{"systemctl"}, args...)}
	if err := sc.runner.Run(ctx, cmd); err != nil {
		return errs.NewCommandError(errs.CodeCommandFailed, message, cmd.String(), err)
	}
	return nil
}

// ServiceRequest describes the node to register.
type ServiceRequest struct {
	Home    string
	ChainID string
	// Supervised selects the cosmovisor unit over the cored unit.
	Supervised bool
	// Confirmed skips the prompt (--service).
	Confirmed bool
}

// ServiceInstaller registers the node with systemd on the service host.
type ServiceInstaller struct {
	prompter   *prompt.Prompter
	generator  *SystemdServiceGenerator
	controller *SystemdController
	logger     *logging.ColoredLogger
	platform   Platform
}

// NewServiceInstaller creates a service installer for platform.
func NewServiceInstaller(p *prompt.Prompter, generator *SystemdServiceGenerator, controller *SystemdController, logger *logging.ColoredLogger, platform Platform) *ServiceInstaller {
	return &ServiceInstaller{
		prompter:   p,
		generator:  generator,
		controller: controller,
		logger:     logger,
		platform:   platform,
	}
}

// ServiceMenu is the install-as-service question for the named service.
func ServiceMenu(name string) prompt.Menu[bool] {
	return prompt.YesNo("service",
		fmt.Sprintf("Do you want to setup %s as a background service?", name),
		fmt.Sprintf("Yes, setup %s as a service", name),
		"No",
		"You can specify the service setup using the --service flag.",
	)
}

// Install asks (unless req.Confirmed), renders the unit and registers it.
// It returns the service name, or "" when nothing was installed.
func (si *ServiceInstaller) Install(ctx context.Context, req ServiceRequest) (string, error) {
	if !si.platform.IsServiceHost() {
		si.logger.ComponentDebug(logging.ComponentService, "Service installation is only available on Linux",
			zap.String("platform", si.platform.String()))
		return "", nil
	}

	name := ServiceCored
	if req.Supervised {
		name = ServiceCosmovisor
	}

	preset := ""
	if req.Confirmed {
		preset = "yes"
	}
	ok, err := prompt.Select(ctx, si.prompter, ServiceMenu(name), preset)
	if err != nil || !ok {
		return "", err
	}

	var unit string
	if req.Supervised {
		unit, err = si.generator.GenerateCosmovisorService(req.Home, req.ChainID)
	} else {
		unit, err = si.generator.GenerateCoredService(req.Home)
	}
	if err != nil {
		return "", errs.Wrapf(err, "failed to render %s unit", name)
	}

	si.logger.ComponentInfo(logging.ComponentService, "Installing service",
		zap.String("service", name),
		zap.String("unit", si.controller.UnitPath(name)),
	)
	si.logger.ComponentDebug(logging.ComponentService, "Unit file\n"+strings.TrimSpace(unit))

	if err := si.controller.WriteServiceUnit(ctx, name, unit); err != nil {
		return "", err
	}
	if err := si.controller.DaemonReload(ctx); err != nil {
		return "", err
	}
	if err := si.controller.RestartService(ctx, serviceJournald); err != nil {
		return "", err
	}
	return name, nil
}
