package install

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	errs "github.com/CoreumFoundation/node-installer/pkg/errors"
	"github.com/CoreumFoundation/node-installer/pkg/logging"
	"github.com/CoreumFoundation/node-installer/pkg/shell"
)

// Version is reported by --version.
var Version = "dev"

// Streams is the process I/O.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// NewCommand builds the installer command.
func NewCommand(streams Streams) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:           "coreum-installer",
		Short:         "Install a Coreum node or client",
		Long:          "Interactively downloads cored, initializes its home directory and optionally sets up cosmovisor and a systemd service.\nEvery question can be answered in advance with a flag; type 'exit' at any prompt to quit.",
		Args:          cobra.NoArgs,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := flags.Options(cmd.Flags())
			if err != nil {
				return errs.InStep(StepValidate, err)
			}
			return Run(cmd.Context(), opts, streams)
		},
	}
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.Err)
	flags.Register(cmd.Flags())

	return cmd
}

// Run wires the real runner and logger and executes the workflow.
func Run(ctx context.Context, opts *Options, streams Streams) error {
	logger, err := logging.New(logging.Options{
		Verbose:      opts.Verbose,
		EnableColors: isTerminal(streams.Err),
		Console:      streams.Err,
		File:         opts.LogFile,
	})
	if err != nil {
		return errs.WrapCode(err, errs.CodeConfig, "failed to create logger")
	}
	defer logger.Sync() //nolint:errcheck

	var runner shell.Runner = shell.NewExecRunner(logger)
	if opts.DryRun {
		runner = shell.NewDryRunRunner(streams.Out)
	}

	_, err = NewOrchestrator(opts, Environment{
		In:     streams.In,
		Out:    streams.Out,
		Runner: runner,
		Logger: logger,
	}).Execute(ctx)
	return err
}

// Handle executes the installer with args and returns the process exit code.
// Failures are reported on streams.Err as "❌ <step>: <message>".
func Handle(ctx context.Context, args []string, streams Streams) int {
	cmd := NewCommand(streams)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err != nil && !errs.IsAborted(err) {
		fmt.Fprintf(streams.Err, "❌ %v\n", err)
	}
	return errs.ExitCode(err)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
