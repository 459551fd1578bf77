package actions

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/actionconsole/internal/action"
	"github.com/louisbranch/actionconsole/internal/action/luaaction"
	"github.com/louisbranch/actionconsole/internal/action/manifest"
)

// Options selects the action sources of a registry.
type Options struct {
	// Builtins includes the sample actions.
	Builtins bool
	// ManifestPath is an optional YAML manifest.
	ManifestPath string
	// ScriptsDir is an optional directory of Lua scripts.
	ScriptsDir string
	// Logger reports what was loaded. Defaults to log.Default().
	Logger *log.Logger
}

// Build loads the configured sources, in the order built-ins, manifest,
// scripts, into a new registry. Later sources win on name collisions.
func Build(ctx context.Context, opts Options) (*action.Registry, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	var entries []action.Entry
	if opts.Builtins {
		entries = append(entries, Builtin()...)
	}
	if opts.ManifestPath != "" {
		loaded, err := manifest.Load(opts.ManifestPath)
		if err != nil {
			return nil, err
		}
		entries = append(entries, loaded...)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.ScriptsDir != "" {
		scripted, err := luaaction.LoadDir(opts.ScriptsDir)
		if err != nil {
			return nil, err
		}
		for _, a := range scripted {
			entries = append(entries, action.Unnamed(a))
		}
	}

	registry := action.NewRegistry()
	if err := action.Load(registry, entries...); err != nil {
		return nil, fmt.Errorf("load actions: %w", err)
	}
	logger.Printf("loaded %d actions", registry.Len())
	return registry, nil
}
