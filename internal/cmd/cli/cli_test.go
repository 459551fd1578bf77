package cli

import (
	"flag"
	"io"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("ACTIONCONSOLE_MANIFEST", "")
	t.Setenv("ACTIONCONSOLE_SCRIPTS_DIR", "")

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Builtins || !cfg.Color {
		t.Fatalf("expected builtins and color by default, got %+v", cfg)
	}
	if cfg.Action != "" || cfg.ManifestPath != "" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("ACTIONCONSOLE_MANIFEST", "env.yaml")
	t.Setenv("ACTIONCONSOLE_CLI_COLOR", "false")

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-manifest", "flag.yaml", "-builtins=false", "-v", "sum"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ManifestPath != "flag.yaml" {
		t.Fatalf("manifest = %q, want flag value", cfg.ManifestPath)
	}
	if cfg.Builtins || cfg.Color || !cfg.Verbose {
		t.Fatalf("unexpected flags %+v", cfg)
	}
	if cfg.Action != "sum" {
		t.Fatalf("action = %q, want sum", cfg.Action)
	}
}

func TestParseConfigRejectsUnknownFlags(t *testing.T) {
	fs := flag.NewFlagSet("cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-nope"}); err == nil {
		t.Fatal("expected flag error")
	}
}
