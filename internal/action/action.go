package action

import (
	"context"
	"errors"
	"io"
)

// Func is the callable behind an action. Anything written to out is captured
// as the action's output; args arrive in signature order.
type Func func(ctx context.Context, out io.Writer, args []any) (any, error)

// Action is one invocable console entry.
type Action struct {
	name        string
	synthesized bool
	anonymous   bool
	risky       bool
	justValue   bool
	fn          Func
	params      []Param
	location    string
	description string
}

// Option configures an Action at construction time.
type Option func(*Action)

// WithName gives the action an explicit name.
func WithName(name string) Option {
	return func(a *Action) {
		a.name = name
	}
}

// WithRisky overrides the risky flag. Callables are risky by default.
func WithRisky(risky bool) Option {
	return func(a *Action) {
		a.risky = risky
	}
}

// WithParams attaches an explicit parameter signature.
func WithParams(params ...Param) Option {
	return func(a *Action) {
		a.params = append([]Param(nil), params...)
	}
}

// WithLocation records where the action was defined.
func WithLocation(location string) Option {
	return func(a *Action) {
		a.location = location
	}
}

// WithDescription attaches a one-line description shown by front-ends.
func WithDescription(description string) Option {
	return func(a *Action) {
		a.description = description
	}
}

// New wraps fn as a risky action. It stays anonymous unless WithName is given.
func New(fn Func, opts ...Option) *Action {
	a := &Action{
		fn:    fn,
		risky: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	a.anonymous = a.name == ""
	return a
}

// Value wraps a plain value as a zero-argument, non-risky action returning it.
func Value(value any, opts ...Option) *Action {
	fn := func(context.Context, io.Writer, []any) (any, error) {
		return value, nil
	}
	a := New(fn, append([]Option{WithRisky(false)}, opts...)...)
	a.justValue = true
	a.params = nil
	return a
}

// Name returns the action name, or "" before one is assigned.
func (a *Action) Name() string { return a.name }

// HasName reports whether the action carries an explicit name.
func (a *Action) HasName() bool { return a.name != "" && !a.synthesized }

// Anonymous reports whether the action has neither an explicit nor a key-derived name.
func (a *Action) Anonymous() bool { return a.anonymous }

// Risky reports whether the action requires confirmation before running.
func (a *Action) Risky() bool { return a.risky }

// JustValue reports whether the action wraps a plain value.
func (a *Action) JustValue() bool { return a.justValue }

// Location returns the definition site as "file:line", when known.
func (a *Action) Location() string { return a.location }

// Description returns the optional description.
func (a *Action) Description() string { return a.description }

// Params returns a copy of the parameter signature.
func (a *Action) Params() []Param {
	return append([]Param(nil), a.params...)
}

// ErrNoCallable is returned when an action is invoked without a callable.
var ErrNoCallable = errors.New("action has no callable")

// Call invokes the underlying callable.
func (a *Action) Call(ctx context.Context, out io.Writer, args []any) (any, error) {
	if a == nil || a.fn == nil {
		return nil, ErrNoCallable
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	return a.fn(ctx, out, args)
}

// assignName sets a loader-derived name. Load only calls it on unnamed actions.
func (a *Action) assignName(name string, anonymous bool) {
	a.name = name
	a.synthesized = anonymous
	a.anonymous = anonymous
}
