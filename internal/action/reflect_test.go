package action

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"testing"
)

func TestFromFuncDerivesSignature(t *testing.T) {
	t.Parallel()

	fn := func(ctx context.Context, out io.Writer, name string, count int64, ratio float32, loud bool, extra any, when fmt.Stringer) error {
		return nil
	}
	a, err := FromFunc(fn)
	if err != nil {
		t.Fatalf("from func: %v", err)
	}
	params := a.Params()
	want := []Type{TypeString, TypeInt, TypeFloat, TypeBool, TypeMissing, TypeUnsupported}
	if len(params) != len(want) {
		t.Fatalf("len(params) = %d, want %d", len(params), len(want))
	}
	for i, typ := range want {
		if params[i].Type != typ {
			t.Fatalf("params[%d].Type = %s, want %s", i, params[i].Type, typ)
		}
		if params[i].Name != fmt.Sprintf("arg%d", i) {
			t.Fatalf("params[%d].Name = %q", i, params[i].Name)
		}
	}
	if params[5].DeclaredType() != "fmt.Stringer" {
		t.Fatalf("DeclaredType = %q, want fmt.Stringer", params[5].DeclaredType())
	}
	if !a.Risky() {
		t.Fatal("expected func action to be risky")
	}
	if !strings.Contains(a.Location(), "reflect_test.go:") {
		t.Fatalf("location = %q", a.Location())
	}
}

func TestFromFuncCallsWithWriterAndConvertedArgs(t *testing.T) {
	t.Parallel()

	fn := func(out io.Writer, who string, times int32) (string, error) {
		for i := int32(0); i < times; i++ {
			fmt.Fprint(out, "hi ")
		}
		return who, nil
	}
	a, err := FromFunc(fn, WithParams(String("who"), Int("times").WithDefault(1)))
	if err != nil {
		t.Fatalf("from func: %v", err)
	}

	var out bytes.Buffer
	value, err := a.Call(context.Background(), &out, []any{"ana", 2})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if value != "ana" {
		t.Fatalf("value = %v, want ana", value)
	}
	if out.String() != "hi hi " {
		t.Fatalf("output = %q", out.String())
	}
}

func TestFromFuncReturnsErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	a := MustFromFunc(func() error { return boom })
	if _, err := a.Call(context.Background(), nil, nil); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	b := MustFromFunc(func(n int) int { return n })
	if _, err := b.Call(context.Background(), nil, []any{"nope"}); err == nil {
		t.Fatal("expected conversion error")
	}
	if _, err := b.Call(context.Background(), nil, nil); err == nil {
		t.Fatal("expected arity error")
	}
}

func TestFromFuncRejectsBadShapes(t *testing.T) {
	t.Parallel()

	if _, err := FromFunc(42); err == nil {
		t.Fatal("expected error for non-func")
	}
	if _, err := FromFunc(func(...string) {}); err == nil {
		t.Fatal("expected error for variadic func")
	}
	if _, err := FromFunc(func() (int, string) { return 0, "" }); err == nil {
		t.Fatal("expected error for non-error second result")
	}
	if _, err := FromFunc(func(string) {}, WithParams(String("a"), String("b"))); err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestFromFuncClampsNarrowIntegers(t *testing.T) {
	t.Parallel()

	var binder Binder
	small := MustFromFunc(func(n int8) int8 { return n })
	unsigned := MustFromFunc(func(n uint) uint { return n })
	byteSized := MustFromFunc(func(n uint8) uint8 { return n })
	single := MustFromFunc(func(f float32) float32 { return f })

	cases := []struct {
		name string
		a    *Action
		arg  any
		want any
	}{
		{name: "int8 overflow", a: small, arg: binder.Coerce(TypeInt, "300"), want: int8(127)},
		{name: "int8 underflow", a: small, arg: binder.Coerce(TypeInt, "-300"), want: int8(-128)},
		{name: "int8 in range", a: small, arg: binder.Coerce(TypeInt, "-7"), want: int8(-7)},
		{name: "uint negative", a: unsigned, arg: binder.Coerce(TypeInt, "-1"), want: uint(0)},
		{name: "uint in range", a: unsigned, arg: binder.Coerce(TypeInt, "42"), want: uint(42)},
		{name: "uint8 overflow", a: byteSized, arg: binder.Coerce(TypeInt, "1000"), want: uint8(255)},
		{name: "uint8 from float", a: byteSized, arg: 3.9, want: uint8(3)},
		{name: "float32 overflow", a: single, arg: binder.Coerce(TypeFloat, "1e300"), want: float32(math.MaxFloat32)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.a.Call(context.Background(), nil, []any{tc.arg})
			if err != nil {
				t.Fatalf("call: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestFromFuncRejectsMismatchedParamTypes(t *testing.T) {
	t.Parallel()

	if _, err := FromFunc(func(int) {}, WithParams(String("x"))); err == nil {
		t.Fatal("expected string param on int argument to be rejected")
	}
	if _, err := FromFunc(func(string) {}, WithParams(Bool("x"))); err == nil {
		t.Fatal("expected bool param on string argument to be rejected")
	}
	if _, err := FromFunc(func(float64) {}, WithParams(Int("x"))); err != nil {
		t.Fatalf("int param on float argument: %v", err)
	}
	if _, err := FromFunc(func(any) {}, WithParams(Bool("x"))); err != nil {
		t.Fatalf("bool param on untyped argument: %v", err)
	}
	if _, err := FromFunc(func(string) {}, WithParams(Untyped("x"))); err != nil {
		t.Fatalf("untyped param: %v", err)
	}
}

func TestFromFuncAcceptsNativeFunc(t *testing.T) {
	t.Parallel()

	var native Func = func(_ context.Context, out io.Writer, args []any) (any, error) {
		return len(args), nil
	}
	a, err := FromFunc(native, WithName("native"))
	if err != nil {
		t.Fatalf("from func: %v", err)
	}
	value, err := a.Call(context.Background(), nil, []any{1, 2})
	if err != nil || value != 2 {
		t.Fatalf("call = %v, %v", value, err)
	}
	if a.Anonymous() {
		t.Fatal("expected named action to be non-anonymous")
	}
}
