// Package engine executes actions and folds everything an invocation produces
// into a list of preformatted entries.
//
// Handle is the reliability boundary of the console: returned errors and panics
// from an action end up as a Throwable entry and never reach the caller. The
// Throwable body names the failing action and its definition site. Only panics
// carry a goroutine stack; a returned error is rendered with its unwrap chain.
package engine

import (
	"bytes"
	"context"
	"log"
	"runtime/debug"

	"github.com/davecgh/go-spew/spew"
	"github.com/louisbranch/actionconsole/internal/action"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/louisbranch/actionconsole/internal/action/engine"

// Engine runs actions with output capture and failure containment.
type Engine struct {
	tracer trace.Tracer
	dumper *spew.ConfigState
	logger *log.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithTracerProvider records invocation spans on tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) {
		if tp != nil {
			e.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// WithLogger sets the logger used to report failed invocations.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		tracer: otel.Tracer(instrumentationName),
		dumper: newDumper(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Handle invokes a with args and returns, in order, the Value, Output and
// Throwable entries that apply. It returns no entries for a call that produced
// a falsy value, no output and no failure.
func (e *Engine) Handle(ctx context.Context, a *action.Action, args []any) []Entry {
	if e == nil {
		e = New()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	name := ""
	if a != nil {
		name = a.Name()
	}
	ctx, span := e.tracer.Start(ctx, "action.handle", trace.WithAttributes(
		attribute.String("action.name", name),
		attribute.Bool("action.risky", a != nil && a.Risky()),
		attribute.Bool("action.just_value", a != nil && a.JustValue()),
	))
	defer span.End()

	var output bytes.Buffer
	value, err := invoke(ctx, a, &output, args)

	entries := make([]Entry, 0, 3)
	if err == nil && Truthy(value) {
		entries = append(entries, Entry{
			Title:    TitleValue,
			Body:     renderValue(e.dumper, value),
			Language: LanguageCode,
		})
	}
	if output.Len() > 0 {
		entries = append(entries, Entry{
			Title:    TitleOutput,
			Body:     output.String(),
			Language: LanguagePlain,
		})
	}
	if err != nil {
		e.logger.Printf("action %q failed: %v", name, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		entries = append(entries, Entry{
			Title:    TitleThrowable,
			Body:     renderFailure(e.dumper, err, callSite(a)),
			Language: LanguageCode,
		})
	}
	span.SetAttributes(attribute.Int("action.entries", len(entries)))
	return entries
}

func invoke(ctx context.Context, a *action.Action, out *bytes.Buffer, args []any) (value any, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			value = nil
			err = &PanicError{Value: recovered, Stack: debug.Stack()}
		}
	}()
	return a.Call(ctx, out, args)
}

// callSite describes where a failing action was defined, e.g. "sum (builtin.go:64)".
func callSite(a *action.Action) string {
	if a == nil {
		return ""
	}
	if a.Location() == "" {
		return a.Name()
	}
	return a.Name() + " (" + a.Location() + ")"
}
