package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/louisbranch/actionconsole/internal/action"
	"github.com/louisbranch/actionconsole/internal/action/engine"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// confirmationProperty carries the gate code for risky tools.
const confirmationProperty = "confirmation"

func toolFor(a *action.Action) *mcp.Tool {
	description := a.Description()
	if description == "" {
		description = fmt.Sprintf("Runs the %s action.", a.Name())
	}
	if location := a.Location(); location != "" {
		description += " Defined at " + location + "."
	}
	if a.Risky() {
		description += " Risky: the first call returns a confirmation code to resend in the confirmation argument."
	}

	annotations := &mcp.ToolAnnotations{Title: a.Name()}
	if a.Risky() {
		destructive := true
		annotations.DestructiveHint = &destructive
	} else {
		annotations.ReadOnlyHint = true
	}
	openWorld := false
	annotations.OpenWorldHint = &openWorld

	return &mcp.Tool{
		Name:        a.Name(),
		Description: description,
		InputSchema: inputSchema(a),
		Annotations: annotations,
	}
}

// inputSchema describes the action parameters. Parameters without a default
// are required.
func inputSchema(a *action.Action) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: map[string]*jsonschema.Schema{},
	}
	for _, param := range a.Params() {
		property := &jsonschema.Schema{
			Type:        schemaType(param.Type),
			Description: param.DeclaredType() + " parameter",
		}
		if param.HasDefault {
			if raw, err := json.Marshal(param.Default); err == nil {
				property.Default = raw
			}
		} else {
			schema.Required = append(schema.Required, param.Name)
		}
		schema.Properties[param.Name] = property
	}
	if a.Risky() {
		schema.Properties[confirmationProperty] = &jsonschema.Schema{
			Type:        "string",
			Description: "Confirmation code for this risky action.",
		}
	}
	return schema
}

func schemaType(t action.Type) string {
	switch t {
	case action.TypeInt:
		return "integer"
	case action.TypeFloat:
		return "number"
	case action.TypeBool:
		return "boolean"
	default:
		return "string"
	}
}

// toolHandler resolves the action at call time, applies the confirmation
// gate and binds the arguments the way the web form does.
func (s *Server) toolHandler(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a, ok := s.registry.Resolve(name)
		if !ok {
			return errorResult("Action not found: " + name), nil
		}
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		args, err := decodeArguments(raw)
		if err != nil {
			return errorResult(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if !s.gate.IsConfirmed(a, args[confirmationProperty]) {
			return errorResult(fmt.Sprintf("Invalid confirmation code; resend with confirmation %q", s.gate.CodeFor(a))), nil
		}
		values := s.binder.Bind(a.Params(), func(param string) (string, bool) {
			value, ok := args[param]
			return value, ok
		})
		return entriesResult(engine.OrDone(s.engine.Handle(ctx, a, values))), nil
	}
}

// entriesResult returns one text block per entry. A Throwable entry marks the
// result as an error.
func entriesResult(entries []engine.Entry) *mcp.CallToolResult {
	result := &mcp.CallToolResult{Content: make([]mcp.Content, 0, len(entries))}
	for _, entry := range entries {
		if entry.Title == engine.TitleThrowable {
			result.IsError = true
		}
		result.Content = append(result.Content, &mcp.TextContent{Text: formatEntry(entry)})
	}
	return result
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: formatEntry(engine.Validation(message))}},
		IsError: true,
	}
}

func formatEntry(entry engine.Entry) string {
	return fmt.Sprintf("---\n%s\n%s\n---", entry.Title, entry.Body)
}
