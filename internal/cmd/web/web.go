// Package web parses web command flags and serves the browser console.
package web

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/actionconsole/internal/action/confirm"
	"github.com/louisbranch/actionconsole/internal/action/engine"
	"github.com/louisbranch/actionconsole/internal/actions"
	platformcmd "github.com/louisbranch/actionconsole/internal/platform/cmd"
	"github.com/louisbranch/actionconsole/internal/services/console"
	"github.com/louisbranch/actionconsole/internal/services/console/storage/sqlite"
)

// Config holds web command configuration.
type Config struct {
	actions.SourceConfig
	HTTPAddr string `env:"ACTIONCONSOLE_WEB_ADDR"    envDefault:":8090"`
	DBPath   string `env:"ACTIONCONSOLE_WEB_DB_PATH"`
	// SessionTTL prunes persisted session values at startup.
	SessionTTL time.Duration `env:"ACTIONCONSOLE_WEB_SESSION_TTL" envDefault:"24h"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := platformcmd.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	cfg.BindFlags(fs)
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite session database (empty keeps sessions in memory)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "age after which persisted session values are pruned")
	if err := platformcmd.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run serves the web console until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceWeb, func(ctx context.Context) error {
		registry, err := actions.Build(ctx, cfg.Options(log.Default()))
		if err != nil {
			return err
		}

		store, closeStore, err := openSessionStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		server, err := console.NewServer(ctx, cfg.HTTPAddr, console.Config{
			Registry: registry,
			Engine:   engine.New(),
			Gate:     confirm.NewGate(),
			Store:    store,
		})
		if err != nil {
			return err
		}
		defer server.Close()

		log.Printf("web console listening on %s", server.Addr())
		return server.ListenAndServe(ctx)
	})
}

// openSessionStore keeps sessions in memory unless a database path is set.
func openSessionStore(ctx context.Context, cfg Config) (console.SessionStore, func(), error) {
	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		return console.NewMemoryStore(), func() {}, nil
	}
	store, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("open session store: %w", err)
	}
	if cfg.SessionTTL > 0 {
		removed, err := store.DeleteOlderThan(ctx, time.Now().Add(-cfg.SessionTTL))
		if err != nil {
			_ = store.Close()
			return nil, nil, err
		}
		if removed > 0 {
			log.Printf("pruned %d stale session values", removed)
		}
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Printf("close session store: %v", err)
		}
	}, nil
}
