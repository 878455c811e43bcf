package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/CoreumFoundation/node-installer/pkg/cli/install"
)

// version metadata populated via -ldflags at build time
var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	go func() {
		// a second signal falls through to the default handler
		<-ctx.Done()
		stop()
	}()

	install.Version = version
	if commit != "" {
		install.Version += " (commit " + commit + ")"
	}
	if date != "" {
		install.Version += " built " + date
	}

	code := install.Handle(ctx, os.Args[1:], install.Streams{
		In:  os.Stdin,
		Out: os.Stdout,
		Err: os.Stderr,
	})
	stop()
	os.Exit(code)
}
