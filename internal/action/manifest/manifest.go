// Package manifest reads YAML files listing console actions.
//
// A manifest has a top-level actions key holding either a mapping of names to
// values or a sequence of anonymous values:
//
//	actions:
//	  version: 1.4.2
//	  limits: {max: 10, min: 1}
//	  tools: !lua scripts/tools.lua
//
// Plain values become value-only actions. A scalar tagged !lua names a script,
// relative to the manifest, and every action that script defines is inserted at
// that position.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/louisbranch/actionconsole/internal/action"
	"github.com/louisbranch/actionconsole/internal/action/luaaction"
	"gopkg.in/yaml.v3"
)

// LuaTag marks a scalar as a Lua script path.
const LuaTag = "!lua"

// Load reads the manifest at path and returns loader entries in file order.
func Load(path string) ([]action.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes manifest data. path is used for locations and to resolve
// script references.
func Parse(path string, data []byte) ([]action.Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("manifest %s is empty", path)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest %s: top level must be a mapping", path)
	}

	var actions *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value == "actions" {
			actions = root.Content[i+1]
		}
	}
	if actions == nil {
		return nil, fmt.Errorf("manifest %s: missing actions key", path)
	}

	r := reader{path: path, dir: filepath.Dir(path)}
	switch actions.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(actions.Content); i += 2 {
			if err := r.add(actions.Content[i].Value, actions.Content[i+1]); err != nil {
				return nil, err
			}
		}
	case yaml.SequenceNode:
		for _, node := range actions.Content {
			if err := r.add("", node); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("manifest %s:%d: actions must be a mapping or a sequence", path, actions.Line)
	}
	return r.entries, nil
}

type reader struct {
	path    string
	dir     string
	entries []action.Entry
}

func (r *reader) add(key string, node *yaml.Node) error {
	if node.Tag == LuaTag {
		return r.addScript(node)
	}
	var value any
	if err := node.Decode(&value); err != nil {
		return fmt.Errorf("manifest %s:%d: %w", r.path, node.Line, err)
	}
	r.entries = append(r.entries, action.Entry{
		Key:      key,
		Value:    value,
		Location: action.FormatLocation(r.path, node.Line),
	})
	return nil
}

// addScript inserts the script's actions without keys; each keeps its own name
// or is named by the loader.
func (r *reader) addScript(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Value == "" {
		return fmt.Errorf("manifest %s:%d: %s needs a script path", r.path, node.Line, LuaTag)
	}
	script := node.Value
	if !filepath.IsAbs(script) {
		script = filepath.Join(r.dir, script)
	}
	actions, err := luaaction.LoadFile(script)
	if err != nil {
		return fmt.Errorf("manifest %s:%d: %w", r.path, node.Line, err)
	}
	for _, a := range actions {
		r.entries = append(r.entries, action.Unnamed(a))
	}
	return nil
}
