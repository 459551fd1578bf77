package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	clicmd "github.com/louisbranch/actionconsole/internal/cmd/cli"
	platformcmd "github.com/louisbranch/actionconsole/internal/platform/cmd"
	"github.com/louisbranch/actionconsole/internal/platform/config"
	clisvc "github.com/louisbranch/actionconsole/internal/services/cli"
)

// main runs one action from the terminal: cli [flags] [action].
func main() {
	cfg, err := clicmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix(platformcmd.LogPrefix(platformcmd.ServiceCLI))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = clicmd.Run(ctx, cfg)
	switch {
	case err == nil:
	case errors.Is(err, clisvc.ErrActionNotFound):
		stop()
		os.Exit(1)
	case errors.Is(err, clisvc.ErrAborted):
		stop()
		os.Exit(130)
	default:
		stop()
		config.Exitf("cli: %v", err)
	}
}
