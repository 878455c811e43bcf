package config

import (
	"os"
	"time"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
)

// Defaults
const (
	DefaultMoniker         = "coreum"
	DefaultBinaryPath      = "/usr/local/bin"
	DefaultDownloadTimeout = 10 * time.Minute
	DefaultSystemdDir      = "/lib/systemd/system"
	defaultHomeDir         = ".cored"
)

// Config holds installer defaults. Every field can be overridden by the
// matching command-line flag; an empty value means "ask".
type Config struct {
	Install    string `yaml:"install"`
	Network    string `yaml:"network"`
	Home       string `yaml:"home"`
	Moniker    string `yaml:"moniker"`
	Pruning    string `yaml:"pruning"`
	BinaryPath string `yaml:"binary_path"`

	Cosmovisor bool `yaml:"cosmovisor"`
	Service    bool `yaml:"service"`
	Overwrite  bool `yaml:"overwrite"`
	Verbose    bool `yaml:"verbose"`

	Download DownloadConfig `yaml:"download"`
	Logging  LoggingConfig  `yaml:"logging"`
	Systemd  SystemdConfig  `yaml:"systemd"`
}

// DownloadConfig bounds release downloads.
type DownloadConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig controls the optional log file.
type LoggingConfig struct {
	File string `yaml:"file"`
}

// SystemdConfig controls where service units are written.
type SystemdConfig struct {
	UnitDir string `yaml:"unit_dir"`
}

// DefaultConfig returns the built-in defaults. Home and Moniker are left empty
// so the operator is asked; DefaultHome and DefaultMoniker are offered as the
// first choice.
func DefaultConfig() *Config {
	return &Config{
		BinaryPath: DefaultBinaryPath,
		Download: DownloadConfig{
			Timeout: DefaultDownloadTimeout,
		},
		Systemd: SystemdConfig{
			UnitDir: DefaultSystemdDir,
		},
	}
}

// Load reads a YAML defaults file on top of DefaultConfig.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, errs.WrapCode(err, errs.CodeConfig, "cannot open config file "+path)
	}
	defer f.Close()

	if err := DecodeStrict(f, cfg); err != nil {
		return nil, errs.WrapCode(err, errs.CodeConfig, "cannot load config file "+path)
	}
	return cfg, nil
}
