package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/actionconsole/internal/platform/otel"
)

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("ACTIONCONSOLE_OTEL_ENDPOINT", "")
	t.Setenv("ACTIONCONSOLE_OTEL_ENABLED", "true")

	shutdown, err := otel.Setup(context.Background(), "actionconsole-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetupNoopWhenDisabled(t *testing.T) {
	t.Setenv("ACTIONCONSOLE_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("ACTIONCONSOLE_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "actionconsole-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := shutdown(ctx); err != nil {
		t.Fatalf("noop shutdown should ignore cancelled context: %v", err)
	}
}

func TestSetupRejectsMalformedEnabledFlag(t *testing.T) {
	t.Setenv("ACTIONCONSOLE_OTEL_ENABLED", "sometimes")

	if _, err := otel.Setup(context.Background(), "actionconsole-test"); err == nil {
		t.Fatal("expected config error")
	}
}

func TestSetupWithConfigCreatesProvider(t *testing.T) {
	// Non-routable address: spans are batched, never exported.
	cfg := otel.Config{Enabled: true, Endpoint: "http://192.0.2.1:4318"}
	if !cfg.Active() {
		t.Fatal("expected config to be active")
	}

	shutdown, err := otel.SetupWithConfig(context.Background(), "actionconsole-test", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}
