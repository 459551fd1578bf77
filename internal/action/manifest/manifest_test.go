package manifest

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/louisbranch/actionconsole/internal/action"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadMappingKeepsOrderAndScripts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "scripts", "tools.lua"), `
action{ name = "ping", risky = false, run = function() return "pong" end }
action{ run = function() return 1 end }
`)
	path := filepath.Join(dir, "actions.yaml")
	writeFile(t, path, `actions:
  version: 1.4.2
  tools: !lua scripts/tools.lua
  limits:
    max: 10
    min: 1
`)

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4", len(entries))
	}
	if entries[0].Key != "version" || entries[0].Value != "1.4.2" {
		t.Fatalf("entries[0] = %+v", entries[0])
	}
	if !strings.HasSuffix(entries[0].Location, "actions.yaml:2") {
		t.Fatalf("location = %q", entries[0].Location)
	}
	ping, ok := entries[1].Value.(*action.Action)
	if !ok || ping.Name() != "ping" || entries[1].Key != "" {
		t.Fatalf("entries[1] = %+v", entries[1])
	}
	if _, ok := entries[2].Value.(*action.Action); !ok {
		t.Fatalf("entries[2] = %+v, want lua action", entries[2])
	}
	want := map[string]any{"max": 10, "min": 1}
	if entries[3].Key != "limits" || !reflect.DeepEqual(entries[3].Value, want) {
		t.Fatalf("entries[3] = %+v", entries[3])
	}

	reg := action.NewRegistry()
	if err := action.Load(reg, entries...); err != nil {
		t.Fatalf("load registry: %v", err)
	}
	got := reg.Names()
	wantNames := []string{"version", "ping", "anonymous-1", "limits"}
	if !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("names = %v, want %v", got, wantNames)
	}
	if version, _ := reg.Resolve("version"); !version.JustValue() || version.Risky() {
		t.Fatal("expected manifest value to be a non-risky value action")
	}
}

func TestParseSequenceIsAnonymous(t *testing.T) {
	t.Parallel()

	entries, err := Parse("inline.yaml", []byte("actions:\n  - hello\n  - [1, 2]\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 2 || entries[0].Key != "" || entries[1].Key != "" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if !reflect.DeepEqual(entries[1].Value, []any{1, 2}) {
		t.Fatalf("entries[1].Value = %#v", entries[1].Value)
	}
	if entries[1].Location != "inline.yaml:3" {
		t.Fatalf("location = %q", entries[1].Location)
	}
}

func TestParseRejectsMalformedManifests(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"empty":          "",
		"no actions key": "other: 1\n",
		"scalar actions": "actions: 3\n",
		"list top level": "- a\n",
		"bad yaml":       "actions: [\n",
		"empty lua tag":  "actions:\n  x: !lua\n",
		"missing script": "actions:\n  x: !lua nowhere.lua\n",
	}
	for name, body := range cases {
		if _, err := Parse(filepath.Join(t.TempDir(), "m.yaml"), []byte(body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}
