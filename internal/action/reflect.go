package action

import (
	"context"
	"fmt"
	"io"
	"math"
	"reflect"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	writerType  = reflect.TypeOf((*io.Writer)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// FromFunc wraps an arbitrary Go func as a risky action.
//
// The func may take a leading context.Context and then an io.Writer that
// receives captured output; the remaining parameters form the signature. It may
// return nothing, one value, an error, or a value and an error.
//
// Output is captured only through the io.Writer parameter. A func that prints
// to os.Stdout, for example with fmt.Println, writes to the process output and
// its text never reaches the result.
//
// Parameter names default to arg0..argN. WithParams replaces the derived
// signature; it must declare the same number of parameters, each of a type
// the func accepts. Numeric arguments are clamped to the range of the Go
// parameter type.
func FromFunc(fn any, opts ...Option) (*Action, error) {
	switch f := fn.(type) {
	case Func:
		return New(f, opts...), nil
	case func(context.Context, io.Writer, []any) (any, error):
		return New(f, opts...), nil
	}

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func || v.IsNil() {
		return nil, fmt.Errorf("action: %T is not a func", fn)
	}
	t := v.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("action: variadic func %s is not supported", t)
	}

	offset := 0
	takesContext := false
	takesWriter := false
	if t.NumIn() > offset && t.In(offset) == contextType {
		takesContext = true
		offset++
	}
	if t.NumIn() > offset && t.In(offset) == writerType {
		takesWriter = true
		offset++
	}

	shape, err := resultShapeOf(t)
	if err != nil {
		return nil, err
	}

	derived := make([]Param, t.NumIn()-offset)
	for i := range derived {
		derived[i] = paramForType(fmt.Sprintf("arg%d", i), t.In(offset+i))
	}

	a := New(nil, opts...)
	switch {
	case a.params == nil:
		a.params = derived
	case len(a.params) != len(derived):
		return nil, fmt.Errorf("action: %d params declared for func with %d", len(a.params), len(derived))
	default:
		for i, p := range a.params {
			if !declaredFits(p.Type, derived[i].Type) {
				return nil, fmt.Errorf("action: param %s declared %s for func argument of type %s", p.Name, p.Type, t.In(offset+i))
			}
		}
	}
	if a.location == "" {
		a.location = funcLocation(v)
	}
	params := a.params

	a.fn = func(ctx context.Context, out io.Writer, args []any) (any, error) {
		if len(args) != len(params) {
			return nil, fmt.Errorf("expected %d arguments, got %d", len(params), len(args))
		}
		in := make([]reflect.Value, 0, t.NumIn())
		if takesContext {
			if ctx == nil {
				ctx = context.Background()
			}
			in = append(in, reflect.ValueOf(&ctx).Elem())
		}
		if takesWriter {
			in = append(in, reflect.ValueOf(&out).Elem())
		}
		for i, arg := range args {
			value, err := convertArg(arg, t.In(offset+i))
			if err != nil {
				return nil, fmt.Errorf("argument %s: %w", params[i].Name, err)
			}
			in = append(in, value)
		}
		return shape.collect(v.Call(in))
	}
	return a, nil
}

// MustFromFunc is FromFunc for package-level action tables.
func MustFromFunc(fn any, opts ...Option) *Action {
	a, err := FromFunc(fn, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

type resultShape int

const (
	resultNone resultShape = iota
	resultValue
	resultError
	resultValueError
)

func resultShapeOf(t reflect.Type) (resultShape, error) {
	switch t.NumOut() {
	case 0:
		return resultNone, nil
	case 1:
		if t.Out(0) == errorType {
			return resultError, nil
		}
		return resultValue, nil
	case 2:
		if t.Out(1) != errorType {
			return 0, fmt.Errorf("action: second result of %s must be error", t)
		}
		return resultValueError, nil
	default:
		return 0, fmt.Errorf("action: func %s returns too many values", t)
	}
}

func (s resultShape) collect(out []reflect.Value) (any, error) {
	switch s {
	case resultValue:
		return out[0].Interface(), nil
	case resultError:
		return nil, asError(out[0])
	case resultValueError:
		if err := asError(out[1]); err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	default:
		return nil, nil
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	err, _ := v.Interface().(error)
	return err
}

func paramForType(name string, t reflect.Type) Param {
	switch t.Kind() {
	case reflect.String:
		return String(name)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(name)
	case reflect.Float32, reflect.Float64:
		return Float(name)
	case reflect.Bool:
		return Bool(name)
	case reflect.Interface:
		if t.NumMethod() == 0 {
			return Untyped(name)
		}
	}
	return Unsupported(name, t.String())
}

// declaredFits reports whether a declared parameter type can be bound to a func
// argument whose type derives to actual. Missing and unsupported declarations
// are left to the validator.
func declaredFits(declared, actual Type) bool {
	if !declared.Bindable() || actual == TypeMissing || declared == actual {
		return true
	}
	numeric := func(t Type) bool { return t == TypeInt || t == TypeFloat }
	return numeric(declared) && numeric(actual)
}

func convertArg(arg any, target reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(target), nil
	}
	v := reflect.ValueOf(arg)
	if v.Type().AssignableTo(target) {
		return v, nil
	}
	if !sameFamily(v.Kind(), target.Kind()) || !v.Type().ConvertibleTo(target) {
		return reflect.Value{}, fmt.Errorf("cannot use %T as %s", arg, target)
	}
	if kindFamily(target.Kind()) == "number" {
		return convertNumber(v, target), nil
	}
	return v.Convert(target), nil
}

// convertNumber converts v to target, clamping to the target's range. Floats
// bound to integer types are truncated toward zero.
func convertNumber(v reflect.Value, target reflect.Type) reflect.Value {
	out := reflect.New(target).Elem()
	switch {
	case isIntKind(target.Kind()):
		maxInt := int64(1)<<(target.Bits()-1) - 1
		out.SetInt(clampInt(v, -maxInt-1, maxInt))
	case isUintKind(target.Kind()):
		out.SetUint(clampUint(v, math.MaxUint64>>(64-target.Bits())))
	default:
		f := floatOf(v)
		if out.OverflowFloat(f) {
			f = math.Copysign(math.MaxFloat32, f)
		}
		out.SetFloat(f)
	}
	return out
}

func clampInt(v reflect.Value, lo, hi int64) int64 {
	switch {
	case isIntKind(v.Kind()):
		return min(max(v.Int(), lo), hi)
	case isUintKind(v.Kind()):
		if u := v.Uint(); u < uint64(hi) {
			return int64(u)
		}
		return hi
	}
	f := math.Trunc(v.Float())
	switch {
	case math.IsNaN(f):
		return 0
	case f <= float64(lo):
		return lo
	case f >= float64(hi):
		return hi
	}
	return int64(f)
}

func clampUint(v reflect.Value, hi uint64) uint64 {
	switch {
	case isIntKind(v.Kind()):
		n := v.Int()
		if n < 0 {
			return 0
		}
		return min(uint64(n), hi)
	case isUintKind(v.Kind()):
		return min(v.Uint(), hi)
	}
	f := math.Trunc(v.Float())
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= float64(hi):
		return hi
	}
	return uint64(f)
}

func floatOf(v reflect.Value) float64 {
	switch {
	case isIntKind(v.Kind()):
		return float64(v.Int())
	case isUintKind(v.Kind()):
		return float64(v.Uint())
	}
	return v.Float()
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func sameFamily(a, b reflect.Kind) bool {
	return kindFamily(a) != "" && kindFamily(a) == kindFamily(b)
}

func kindFamily(k reflect.Kind) string {
	switch {
	case isIntKind(k), isUintKind(k), k == reflect.Float32, k == reflect.Float64:
		return "number"
	case k == reflect.String:
		return "string"
	case k == reflect.Bool:
		return "bool"
	default:
		return ""
	}
}
