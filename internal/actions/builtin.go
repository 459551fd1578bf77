// Package actions provides the built-in console actions and composes the
// registry each binary serves.
package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/louisbranch/actionconsole/internal/action"
)

// Version is reported by the version action. Release builds override it with
// -ldflags "-X github.com/louisbranch/actionconsole/internal/actions.Version=...".
var Version = "dev"

// ErrDivideByZero is returned by the divide action.
var ErrDivideByZero = errors.New("division by zero")

// Builtin returns the sample actions in listing order.
func Builtin() []action.Entry {
	return []action.Entry{
		action.Named("hello", action.MustFromFunc(hello,
			action.WithRisky(false),
			action.WithDescription("Prints a greeting."),
			action.WithParams(action.String("who").WithDefault("world")),
		)),
		action.Named("sum", action.MustFromFunc(sum,
			action.WithDescription("Adds two integers."),
			action.WithParams(action.Int("a"), action.Int("b")),
		)),
		action.Named("divide", action.MustFromFunc(divide,
			action.WithDescription("Divides a by b."),
			action.WithParams(action.Float("a"), action.Float("b").WithDefault(1.0)),
		)),
		action.Named("uuid", action.MustFromFunc(newUUID,
			action.WithRisky(false),
			action.WithDescription("Returns a random UUID."),
		)),
		action.Named("now", action.MustFromFunc(currentTime,
			action.WithRisky(false),
			action.WithDescription("Returns the server time."),
		)),
		action.Named("env", action.MustFromFunc(lookupEnv,
			action.WithDescription("Reads an environment variable of the server process."),
			action.WithParams(action.String("name")),
		)),
		action.Named("explode", action.MustFromFunc(explode,
			action.WithDescription("Panics, to show failure reporting."),
		)),
		action.Named("version", Version),
		action.Unnamed("Welcome to the action console."),
	}
}

func hello(out io.Writer, who string) {
	fmt.Fprintf(out, "Hello, %s!\n", who)
}

func sum(a, b int) int {
	return a + b
}

func divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func newUUID() string {
	return uuid.NewString()
}

func currentTime() string {
	return time.Now().Format(time.RFC3339)
}

func lookupEnv(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	value, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("environment variable %q is not set", name)
	}
	return value, nil
}

func explode() {
	panic("boom: explode was invoked")
}
