package actions

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/actionconsole/internal/action"
	"github.com/louisbranch/actionconsole/internal/action/engine"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestBuiltinRegistryListing(t *testing.T) {
	t.Parallel()

	registry, err := Build(context.Background(), Options{Builtins: true, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []string{"hello", "sum", "divide", "uuid", "now", "env", "explode", "version", "anonymous-0"}
	if got := registry.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}

	var validator action.SignatureValidator
	for _, a := range registry.ResolveAll() {
		if status := validator.Validate(a); !status.IsValid() {
			t.Fatalf("%s: %s", a.Name(), status.Message())
		}
	}

	welcome, _ := registry.Resolve("anonymous-0")
	if !welcome.Anonymous() || !welcome.JustValue() {
		t.Fatal("expected welcome value to be anonymous and value-only")
	}
	hello, _ := registry.Resolve("hello")
	if hello.Risky() {
		t.Fatal("expected hello to be safe")
	}
	env, _ := registry.Resolve("env")
	if !env.Risky() {
		t.Fatal("expected env to be risky")
	}
}

func TestBuiltinActionsRun(t *testing.T) {
	t.Parallel()

	registry, err := Build(context.Background(), Options{Builtins: true, Logger: quietLogger()})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	eng := engine.New(engine.WithLogger(quietLogger()))
	run := func(name string, args ...any) []engine.Entry {
		t.Helper()
		a, ok := registry.Resolve(name)
		if !ok {
			t.Fatalf("missing action %q", name)
		}
		return eng.Handle(context.Background(), a, args)
	}

	hello := run("hello", "ana")
	if len(hello) != 1 || hello[0].Title != engine.TitleOutput || hello[0].Body != "Hello, ana!\n" {
		t.Fatalf("hello = %+v", hello)
	}
	if got := run("sum", 2, 3); len(got) != 1 || got[0].Body != "(int) 5" {
		t.Fatalf("sum = %+v", got)
	}
	if got := run("divide", 1.0, 0.0); len(got) != 1 || got[0].Title != engine.TitleThrowable {
		t.Fatalf("divide by zero = %+v", got)
	}
	if got := run("explode"); len(got) != 1 || !strings.Contains(got[0].Body, "boom") {
		t.Fatalf("explode = %+v", got)
	}
}

func TestBuiltinFuncs(t *testing.T) {
	t.Parallel()

	if _, err := divide(1, 0); !errors.Is(err, ErrDivideByZero) {
		t.Fatalf("divide err = %v", err)
	}
	if got, _ := divide(3, 2); got != 1.5 {
		t.Fatalf("divide = %v", got)
	}
	if _, err := uuid.Parse(newUUID()); err != nil {
		t.Fatalf("uuid: %v", err)
	}
	if _, err := time.Parse(time.RFC3339, currentTime()); err != nil {
		t.Fatalf("now: %v", err)
	}
}

func TestLookupEnv(t *testing.T) {
	t.Setenv("ACTIONCONSOLE_ACTIONS_TEST", "value")

	if got, err := lookupEnv(context.Background(), "ACTIONCONSOLE_ACTIONS_TEST"); err != nil || got != "value" {
		t.Fatalf("lookupEnv = %q, %v", got, err)
	}
	if _, err := lookupEnv(context.Background(), "ACTIONCONSOLE_ACTIONS_TEST_UNSET"); err == nil {
		t.Fatal("expected unset variable error")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := lookupEnv(ctx, "ACTIONCONSOLE_ACTIONS_TEST"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestBuildComposesSources(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "actions.yaml")
	if err := os.WriteFile(manifestPath, []byte("actions:\n  hello: overridden\n  motd: hi\n"), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	scripts := filepath.Join(dir, "scripts")
	if err := os.Mkdir(scripts, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(scripts, "ping.lua"), []byte(`action{ name = "ping", risky = false, run = function() return "pong" end }`), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	registry, err := Build(context.Background(), Options{
		Builtins:     true,
		ManifestPath: manifestPath,
		ScriptsDir:   scripts,
		Logger:       quietLogger(),
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	hello, _ := registry.Resolve("hello")
	if !hello.JustValue() {
		t.Fatal("expected manifest value to replace built-in hello")
	}
	if names := registry.Names(); names[0] != "hello" {
		t.Fatalf("expected replaced action to keep its position, got %v", names)
	}
	last, _ := registry.ResolveLast()
	if last.Name() != "ping" {
		t.Fatalf("last = %q, want ping", last.Name())
	}
}

func TestBuildReportsSourceErrors(t *testing.T) {
	t.Parallel()

	if _, err := Build(context.Background(), Options{ManifestPath: filepath.Join(t.TempDir(), "missing.yaml"), Logger: quietLogger()}); err == nil {
		t.Fatal("expected manifest error")
	}
	registry, err := Build(context.Background(), Options{Logger: quietLogger()})
	if err != nil || registry.Len() != 0 {
		t.Fatalf("empty build = %v, %v", registry, err)
	}
}
