package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Addr     string `env:"ACTIONCONSOLE_TEST_ADDR" envDefault:":8090"`
	Builtins bool   `env:"ACTIONCONSOLE_TEST_BUILTINS" envDefault:"true"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != ":8090" || !cfg.Builtins {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("ACTIONCONSOLE_TEST_ADDR", "127.0.0.1:9000")
	t.Setenv("ACTIONCONSOLE_TEST_BUILTINS", "false")

	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9000" || cfg.Builtins {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("ACTIONCONSOLE_TEST_BUILTINS", "maybe")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
