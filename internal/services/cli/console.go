// Package cli runs one action per session from a terminal prompt.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/louisbranch/actionconsole/internal/action"
	"github.com/louisbranch/actionconsole/internal/action/engine"
)

// ErrActionNotFound is returned when the requested name does not resolve.
var ErrActionNotFound = errors.New("action not found")

// Console asks for an action and its arguments, runs it, and prints the result
// blocks. The operator is at the terminal, so no confirmation is asked and
// signatures are not validated: unsupported types receive the raw string.
type Console struct {
	Registry *action.Registry
	Engine   *engine.Engine
	Prompter Prompter
	Out      io.Writer
	// Color highlights block titles.
	Color bool

	binder action.Binder
}

// Run resolves name, prompting for it when empty, and invokes the action.
func (c *Console) Run(ctx context.Context, name string) error {
	if c.Registry == nil || c.Prompter == nil {
		return errors.New("cli console requires a registry and a prompter")
	}
	out := c.Out
	if out == nil {
		out = io.Discard
	}

	name = strings.TrimSpace(name)
	if name == "" {
		line, err := c.Prompter.Prompt("Action: ")
		if err != nil {
			return fmt.Errorf("read action name: %w", err)
		}
		name = strings.TrimSpace(line)
	}

	a, ok := c.Registry.Resolve(name)
	if !ok {
		fmt.Fprintln(out, "Action not found")
		return fmt.Errorf("%w: %q", ErrActionNotFound, name)
	}

	args, err := c.collectArgs(a)
	if err != nil {
		return err
	}

	eng := c.Engine
	if eng == nil {
		eng = engine.New()
	}
	entries := engine.OrDone(eng.Handle(ctx, a, args))
	return c.print(out, entries)
}

// collectArgs prompts for each parameter until its input resolves.
func (c *Console) collectArgs(a *action.Action) ([]any, error) {
	params := a.Params()
	args := make([]any, 0, len(params))
	for _, param := range params {
		for {
			line, err := c.Prompter.Prompt(param.Name + ": ")
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", param.Name, err)
			}
			if value, ok := c.binder.Resolve(param, strings.TrimSpace(line)); ok {
				args = append(args, value)
				break
			}
		}
	}
	return args, nil
}

func (c *Console) print(out io.Writer, entries []engine.Entry) error {
	for _, entry := range entries {
		title := c.titleColor(entry.Title).Sprint(entry.Title)
		if _, err := fmt.Fprintf(out, "---\n%s\n%s\n---\n", title, entry.Body); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	return nil
}

func (c *Console) titleColor(title string) *color.Color {
	var clr *color.Color
	switch title {
	case engine.TitleThrowable:
		clr = color.New(color.FgRed, color.Bold)
	case engine.TitleValidation:
		clr = color.New(color.FgYellow, color.Bold)
	case engine.TitleOutput:
		clr = color.New(color.FgCyan, color.Bold)
	default:
		clr = color.New(color.FgGreen, color.Bold)
	}
	if c.Color {
		clr.EnableColor()
	} else {
		clr.DisableColor()
	}
	return clr
}
