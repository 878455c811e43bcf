package install

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/CoreumFoundation/node-installer/pkg/config"
	"github.com/CoreumFoundation/node-installer/pkg/environments/production"
	"github.com/CoreumFoundation/node-installer/pkg/environments/production/installers"
	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/logging"
	"github.com/CoreumFoundation/node-installer/pkg/network"
	"github.com/CoreumFoundation/node-installer/pkg/prompt"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
)

// Workflow steps, used to name the step that failed.
const (
	StepValidate          = "validate flags"
	StepDetectPlatform    = "detect platform"
	StepCheckDependencies = "check dependencies"
	StepChooseInstall     = "choose installation"
	StepChooseNetwork     = "choose network"
	StepDownloadBinary    = "download cored"
	StepChooseHome        = "choose home"
	StepChooseMoniker     = "choose moniker"
	StepInitializeHome    = "initialize home"
	StepInstallCosmovisor = "install cosmovisor"
	StepConfigurePruning  = "configure pruning"
	StepInstallService    = "install service"
)

// Environment is everything the workflow talks to outside of its options.
type Environment struct {
	In     io.Reader
	Out    io.Writer
	Runner shell.Runner
	Logger *logging.ColoredLogger
	// Platform overrides host detection when set.
	Platform *production.Platform
	// User owns installed binaries and runs the service.
	User string
	// PromptOptions are applied after the verbose option.
	PromptOptions []prompt.Option
	// Rand replaces the pruning interval source when set.
	Rand func(n int) int
}

// InstallationContext collects the answers of one run.
type InstallationContext struct {
	Mode                InstallMode
	Profile             network.Profile
	Home                string
	Moniker             string
	Pruning             production.PruningPolicy
	CosmovisorInstalled bool
	// Service is the installed systemd service, empty if none.
	Service string
}

// Orchestrator manages the install process
type Orchestrator struct {
	opts      *Options
	env       Environment
	prompter  *prompt.Prompter
	validator *Validator
	logger    *logging.ColoredLogger
}

// NewOrchestrator creates a new install orchestrator
func NewOrchestrator(opts *Options, env Environment) *Orchestrator {
	if env.Logger == nil {
		env.Logger = logging.NewNopLogger()
	}
	if env.User == "" {
		env.User = production.OperatorUser()
	}
	popts := append([]prompt.Option{prompt.WithVerbose(opts.Verbose)}, env.PromptOptions...)

	return &Orchestrator{
		opts:      opts,
		env:       env,
		prompter:  prompt.New(env.In, env.Out, popts...),
		validator: NewValidator(opts),
		logger:    env.Logger,
	}
}

// Execute runs the installation workflow. An operator exit or decline is
// returned as errs.ErrAborted; every other error names its step.
func (o *Orchestrator) Execute(ctx context.Context) (*InstallationContext, error) {
	if err := o.validator.ValidateFlags(); err != nil {
		return nil, errs.InStep(StepValidate, err)
	}

	platform, err := o.platform()
	if err != nil {
		return nil, errs.InStep(StepDetectPlatform, err)
	}
	o.logger.ComponentDebug(logging.ComponentInstaller, "Detected platform", zap.String("platform", platform.String()))

	deps := production.RequiredDependencies(platform, o.opts.Install != ModeClient.String())
	if _, err := production.NewDependencyChecker(o.env.Runner).Check(deps); err != nil {
		return nil, errs.InStep(StepCheckDependencies, err)
	}

	welcome(o.prompter)

	ic := &InstallationContext{}

	if ic.Mode, err = prompt.Select(ctx, o.prompter, installMenu(), o.opts.Install); err != nil {
		return nil, errs.InStep(StepChooseInstall, err)
	}

	chainID, err := prompt.Select(ctx, o.prompter, networkMenu(), o.opts.Network)
	if err != nil {
		return nil, errs.InStep(StepChooseNetwork, err)
	}
	ic.Profile = network.MustLookup(chainID)
	o.logger.ComponentInfo(logging.ComponentNetwork, "Using network",
		zap.String("chain_id", string(chainID)),
		zap.String("version", ic.Profile.Version),
	)

	base := installers.NewBaseInstaller(installers.Config{
		OS:              platform.OS,
		Arch:            platform.Arch,
		BinDir:          o.opts.BinaryPath,
		Privileged:      platform.IsServiceHost(),
		User:            o.env.User,
		DownloadTimeout: o.opts.DownloadTimeout,
	}, o.env.Runner, o.logger)

	cored := installers.NewCoredInstaller(base, ic.Profile)
	o.prompter.Printf("💡 You can change the path using --binary-path\n")
	if err := cored.Install(ctx); err != nil {
		return nil, errs.InStep(StepDownloadBinary, err)
	}

	if ic.Home, err = o.chooseHome(ctx); err != nil {
		return nil, errs.InStep(StepChooseHome, err)
	}
	if ic.Moniker, err = o.chooseMoniker(ctx); err != nil {
		return nil, errs.InStep(StepChooseMoniker, err)
	}

	home := production.NewHomeInitializer(o.prompter, o.env.Runner, o.logger, cored.BinaryPath(), o.opts.DryRun)
	err = home.Initialize(ctx, production.HomeRequest{
		Home:      ic.Home,
		ChainID:   string(chainID),
		Moniker:   ic.Moniker,
		Overwrite: o.opts.Overwrite,
	})
	if err != nil {
		return nil, errs.InStep(StepInitializeHome, err)
	}

	if ic.Mode == ModeClient {
		complete(o.prompter, ic)
		return ic, nil
	}

	if ic.CosmovisorInstalled, err = o.installCosmovisor(ctx, base, ic, cored.BinaryPath()); err != nil {
		return nil, errs.InStep(StepInstallCosmovisor, err)
	}

	if err := o.configurePruning(ctx, ic); err != nil {
		return nil, errs.InStep(StepConfigurePruning, err)
	}

	services := production.NewServiceInstaller(o.prompter,
		production.NewSystemdServiceGenerator(o.opts.BinaryPath, o.env.User),
		production.NewSystemdController(o.env.Runner, o.opts.SystemdDir),
		o.logger,
		platform,
	)
	ic.Service, err = services.Install(ctx, production.ServiceRequest{
		Home:       ic.Home,
		ChainID:    string(chainID),
		Supervised: ic.CosmovisorInstalled,
		Confirmed:  o.opts.Service,
	})
	if err != nil {
		return nil, errs.InStep(StepInstallService, err)
	}

	complete(o.prompter, ic)
	return ic, nil
}

func (o *Orchestrator) platform() (production.Platform, error) {
	if o.env.Platform != nil {
		return *o.env.Platform, nil
	}
	detector := &production.ArchitectureDetector{}
	return detector.Detect()
}

func (o *Orchestrator) chooseHome(ctx context.Context) (string, error) {
	if o.opts.Home != "" {
		return config.AbsPath(o.opts.Home)
	}

	useDefault, err := prompt.Select(ctx, o.prompter, homeMenu(), "")
	if err != nil {
		return "", err
	}
	if useDefault {
		return config.DefaultHome(), nil
	}

	custom, err := o.prompter.Text(ctx, "Enter the path for Coreum home: ", "Invalid path. Please enter a valid directory.")
	if err != nil {
		return "", err
	}
	return config.AbsPath(custom)
}

func (o *Orchestrator) chooseMoniker(ctx context.Context) (string, error) {
	if o.opts.Moniker != "" {
		return o.opts.Moniker, nil
	}

	useDefault, err := prompt.Select(ctx, o.prompter, monikerMenu(), "")
	if err != nil {
		return "", err
	}
	if useDefault {
		return config.DefaultMoniker, nil
	}
	return o.prompter.Text(ctx, "Enter the custom moniker: ", "Invalid moniker. Please enter a valid moniker.")
}

func (o *Orchestrator) installCosmovisor(ctx context.Context, base *installers.BaseInstaller, ic *InstallationContext, coredPath string) (bool, error) {
	preset := ""
	if o.opts.Cosmovisor {
		preset = "yes"
	}
	install, err := prompt.Select(ctx, o.prompter, cosmovisorMenu(), preset)
	if err != nil {
		return false, err
	}
	if !install {
		o.prompter.Printf("Skipping cosmovisor installation.\n")
		return false, nil
	}

	cv := installers.NewCosmovisorInstaller(base)
	if err := cv.Install(ctx); err != nil {
		return false, err
	}
	if err := cv.Init(ctx, production.ChainDir(ic.Home, string(ic.Profile.ChainID)), coredPath); err != nil {
		return false, err
	}
	return true, nil
}

func (o *Orchestrator) configurePruning(ctx context.Context, ic *InstallationContext) error {
	policy, err := prompt.Select(ctx, o.prompter, pruningMenu(), o.opts.Pruning)
	if err != nil {
		return err
	}
	ic.Pruning = policy

	pc := production.NewPruningConfigurator(o.logger, o.opts.DryRun)
	if o.env.Rand != nil {
		pc.WithRand(o.env.Rand)
	}
	_, err = pc.Apply(production.AppConfigPath(ic.Home, string(ic.Profile.ChainID)), policy)
	return err
}
