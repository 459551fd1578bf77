package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// PanicError carries a value recovered from a panicking action.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes a panicked error value.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

func newDumper() *spew.ConfigState {
	return &spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
		MaxDepth:                16,
	}
}

func renderValue(dumper *spew.ConfigState, value any) string {
	return strings.TrimRight(dumper.Sdump(value), "\n")
}

func renderFailure(dumper *spew.ConfigState, err error, site string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%T: %v\n", err, err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(&b, "caused by %T: %v\n", cause, cause)
	}
	if site != "" {
		fmt.Fprintf(&b, "in action %s\n", site)
	}
	var panicErr *PanicError
	if errors.As(err, &panicErr) {
		if _, isErr := panicErr.Value.(error); !isErr {
			b.WriteString("\nvalue:\n")
			b.WriteString(renderValue(dumper, panicErr.Value))
			b.WriteString("\n")
		}
		if len(panicErr.Stack) > 0 {
			b.WriteString("\nstack:\n")
			b.Write(panicErr.Stack)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
