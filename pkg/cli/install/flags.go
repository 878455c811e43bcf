package install

import (
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/CoreumFoundation/node-installer/pkg/config"
)

// Flags represents install command flags
type Flags struct {
	Home       string
	Moniker    string
	Verbose    bool
	Overwrite  bool
	Network    string
	Pruning    string
	Install    string
	BinaryPath string
	Cosmovisor bool
	Service    bool

	ConfigFile      string
	LogFile         string
	DownloadTimeout time.Duration
	DryRun          bool
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	fs.SetNormalizeFunc(NormalizeFlagName)

	fs.StringVar(&f.Home, "home", "", "Coreum home directory (default ~/.cored)")
	fs.StringVarP(&f.Moniker, "moniker", "m", "", "Node moniker (default \"coreum\")")
	fs.BoolVarP(&f.Verbose, "verbose", "v", false, "Print every chosen option and debug logs")
	fs.BoolVarP(&f.Overwrite, "overwrite", "o", false, "Delete and reinitialize the home directory without asking")
	fs.StringVarP(&f.Network, "network", "n", "", "Network to join (coreum-mainnet-1, coreum-testnet-1)")
	fs.StringVarP(&f.Pruning, "pruning", "p", "", "Pruning settings (default, nothing, everything)")
	fs.StringVarP(&f.Install, "install", "i", "", "Installation type (node, client)")
	fs.StringVar(&f.BinaryPath, "binary-path", config.DefaultBinaryPath, "Directory the binaries are installed into")
	fs.BoolVarP(&f.Cosmovisor, "cosmovisor", "c", false, "Install cosmovisor without asking")
	fs.BoolVarP(&f.Service, "service", "s", false, "Install the systemd service without asking")

	fs.StringVar(&f.ConfigFile, "config", "", "YAML file with installer defaults")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write debug logs to this file")
	fs.DurationVar(&f.DownloadTimeout, "download-timeout", config.DefaultDownloadTimeout, "Timeout for each download (0 disables)")
	fs.BoolVar(&f.DryRun, "dry-run", false, "Print commands and file changes instead of running them")
}

// NormalizeFlagName accepts underscores in flag names, so --binary_path
// and --binary-path are the same flag.
func NormalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

// Options is the resolved run configuration: config file defaults overridden
// by every flag the operator set explicitly.
type Options struct {
	Install string
	Network string
	Pruning string
	Home    string
	Moniker string

	BinaryPath string
	Cosmovisor bool
	Service    bool
	Overwrite  bool
	Verbose    bool
	DryRun     bool

	DownloadTimeout time.Duration
	LogFile         string
	SystemdDir      string
}

// Options merges the config file (if any) with the flags changed in fs.
func (f *Flags) Options(fs *pflag.FlagSet) (*Options, error) {
	cfg, err := config.Load(f.ConfigFile)
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool { return fs != nil && fs.Changed(name) }
	overrideString := func(name string, dst *string, v string) {
		if changed(name) {
			*dst = v
		}
	}
	overrideBool := func(name string, dst *bool, v bool) {
		if changed(name) {
			*dst = v
		}
	}

	overrideString("install", &cfg.Install, f.Install)
	overrideString("network", &cfg.Network, f.Network)
	overrideString("pruning", &cfg.Pruning, f.Pruning)
	overrideString("home", &cfg.Home, f.Home)
	overrideString("moniker", &cfg.Moniker, f.Moniker)
	overrideString("binary-path", &cfg.BinaryPath, f.BinaryPath)
	overrideString("log-file", &cfg.Logging.File, f.LogFile)
	overrideBool("cosmovisor", &cfg.Cosmovisor, f.Cosmovisor)
	overrideBool("service", &cfg.Service, f.Service)
	overrideBool("overwrite", &cfg.Overwrite, f.Overwrite)
	overrideBool("verbose", &cfg.Verbose, f.Verbose)
	if changed("download-timeout") {
		cfg.Download.Timeout = f.DownloadTimeout
	}

	opts := &Options{
		Install:         cfg.Install,
		Network:         cfg.Network,
		Pruning:         cfg.Pruning,
		Home:            cfg.Home,
		Moniker:         cfg.Moniker,
		BinaryPath:      cfg.BinaryPath,
		Cosmovisor:      cfg.Cosmovisor,
		Service:         cfg.Service,
		Overwrite:       cfg.Overwrite,
		Verbose:         cfg.Verbose,
		DryRun:          f.DryRun,
		DownloadTimeout: cfg.Download.Timeout,
		LogFile:         cfg.Logging.File,
		SystemdDir:      cfg.Systemd.UnitDir,
	}

	// validated after flags are applied so a flag can repair a bad file value
	if problems := cfg.Validate(); len(problems) > 0 {
		return opts, joinProblems(problems)
	}
	return opts, nil
}
