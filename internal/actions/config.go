package actions

import (
	"flag"
	"log"
)

// SourceConfig is the env and flag surface shared by every binary for
// choosing action sources.
type SourceConfig struct {
	ManifestPath string `env:"ACTIONCONSOLE_MANIFEST"`
	ScriptsDir   string `env:"ACTIONCONSOLE_SCRIPTS_DIR"`
	Builtins     bool   `env:"ACTIONCONSOLE_BUILTINS" envDefault:"true"`
}

// BindFlags registers the source flags on fs, defaulting to the current values.
func (c *SourceConfig) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ManifestPath, "manifest", c.ManifestPath, "YAML action manifest")
	fs.StringVar(&c.ScriptsDir, "scripts", c.ScriptsDir, "directory of Lua action scripts")
	fs.BoolVar(&c.Builtins, "builtins", c.Builtins, "include the built-in sample actions")
}

// Options converts the config into Build options.
func (c SourceConfig) Options(logger *log.Logger) Options {
	return Options{
		Builtins:     c.Builtins,
		ManifestPath: c.ManifestPath,
		ScriptsDir:   c.ScriptsDir,
		Logger:       logger,
	}
}
