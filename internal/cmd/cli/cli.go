// Package cli parses CLI command flags and runs one console session.
package cli

import (
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/louisbranch/actionconsole/internal/action/engine"
	"github.com/louisbranch/actionconsole/internal/actions"
	platformcmd "github.com/louisbranch/actionconsole/internal/platform/cmd"
	clisvc "github.com/louisbranch/actionconsole/internal/services/cli"
	"github.com/mattn/go-isatty"
)

// Config holds CLI command configuration.
type Config struct {
	actions.SourceConfig
	Color bool `env:"ACTIONCONSOLE_CLI_COLOR" envDefault:"true"`
	// Action is the optional first positional argument.
	Action string
	// Verbose keeps the loader log lines on stderr.
	Verbose bool `env:"ACTIONCONSOLE_CLI_VERBOSE"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.BindFlags(fs)
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "color result titles when stdout is a terminal")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "log loaded sources")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Action = fs.Arg(0)
	return cfg, nil
}

// Run loads the registry and runs one action on the terminal.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceCLI, func(ctx context.Context) error {
		logger := log.New(io.Discard, "", 0)
		if cfg.Verbose {
			logger = log.Default()
		}
		registry, err := actions.Build(ctx, cfg.Options(logger))
		if err != nil {
			return err
		}

		prompter := clisvc.NewPrompter(os.Stdin, os.Stdout, registry.Names())
		defer prompter.Close()

		console := &clisvc.Console{
			Registry: registry,
			Engine:   engine.New(engine.WithLogger(logger)),
			Prompter: prompter,
			Out:      os.Stdout,
			Color:    cfg.Color && isatty.IsTerminal(os.Stdout.Fd()),
		}
		return console.Run(ctx, cfg.Action)
	})
}
