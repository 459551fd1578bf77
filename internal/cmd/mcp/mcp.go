// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"log"

	"github.com/louisbranch/actionconsole/internal/action/confirm"
	"github.com/louisbranch/actionconsole/internal/action/engine"
	"github.com/louisbranch/actionconsole/internal/actions"
	platformcmd "github.com/louisbranch/actionconsole/internal/platform/cmd"
	"github.com/louisbranch/actionconsole/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	actions.SourceConfig
	HTTPAddr  string `env:"ACTIONCONSOLE_MCP_HTTP_ADDR" envDefault:"localhost:8091"`
	Transport string `env:"ACTIONCONSOLE_MCP_TRANSPORT" envDefault:"stdio"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.BindFlags(fs)
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP tool server.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceMCP, func(ctx context.Context) error {
		registry, err := actions.Build(ctx, cfg.Options(log.Default()))
		if err != nil {
			return err
		}
		return service.Run(ctx, service.Config{
			Transport: service.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
			Version:   actions.Version,
			Registry:  registry,
			Engine:    engine.New(),
			Gate:      confirm.NewGate(),
		})
	})
}
