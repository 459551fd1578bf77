package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Addr     string `env:"ACTIONCONSOLE_CMD_TEST_ADDR" envDefault:"127.0.0.1:8090"`
	Manifest string `env:"ACTIONCONSOLE_CMD_TEST_MANIFEST"`
}

func TestParseConfigFromArgsFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ACTIONCONSOLE_CMD_TEST_ADDR", "env:9000")
	t.Setenv("ACTIONCONSOLE_CMD_TEST_MANIFEST", "env.yaml")

	cfg := testConfig{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "address")
	fs.StringVar(&cfg.Manifest, "manifest", cfg.Manifest, "manifest")
	if err := ParseArgs(fs, []string{"-addr", "flag:9001"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if cfg.Addr != "flag:9001" {
		t.Fatalf("Addr = %q, want flag value", cfg.Addr)
	}
	if cfg.Manifest != "env.yaml" {
		t.Fatalf("Manifest = %q, want env value", cfg.Manifest)
	}
}

func TestParseConfigRejectsNilTargets(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil config error")
	}
	if err := ParseArgs(nil, nil); err == nil {
		t.Fatal("expected nil parser error")
	}
}

func TestRunWithTelemetry(t *testing.T) {
	t.Setenv("ACTIONCONSOLE_OTEL_ENDPOINT", "")

	if err := RunWithTelemetry(context.Background(), "", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected missing service error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceWeb, nil); err == nil {
		t.Fatal("expected missing run function error")
	}

	boom := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceCLI, func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want run error", err)
	}
}

func TestLogPrefix(t *testing.T) {
	t.Parallel()

	if got := LogPrefix(ServiceMCP); got != "[MCP] " {
		t.Fatalf("LogPrefix = %q", got)
	}
}
