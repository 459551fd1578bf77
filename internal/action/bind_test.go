package action

import (
	"math"
	"testing"
)

func TestBinderCoerce(t *testing.T) {
	t.Parallel()

	var b Binder
	tests := []struct {
		name string
		typ  Type
		raw  string
		want any
	}{
		{name: "bool empty", typ: TypeBool, raw: "", want: false},
		{name: "bool zero", typ: TypeBool, raw: "0", want: false},
		{name: "bool one", typ: TypeBool, raw: "1", want: true},
		{name: "bool word false is true", typ: TypeBool, raw: "false", want: true},
		{name: "int plain", typ: TypeInt, raw: "42", want: 42},
		{name: "int garbage", typ: TypeInt, raw: "abc", want: 0},
		{name: "int prefix", typ: TypeInt, raw: "  12abc", want: 12},
		{name: "int negative", typ: TypeInt, raw: "-7", want: -7},
		{name: "int truncates fraction", typ: TypeInt, raw: "3.9", want: 3},
		{name: "int exponent", typ: TypeInt, raw: "1e3", want: 1000},
		{name: "int overflow clamps", typ: TypeInt, raw: "99999999999999999999", want: math.MaxInt},
		{name: "float fraction", typ: TypeFloat, raw: "3.5", want: 3.5},
		{name: "float leading dot", typ: TypeFloat, raw: ".25kg", want: 0.25},
		{name: "float garbage", typ: TypeFloat, raw: "x1", want: 0.0},
		{name: "string passthrough", typ: TypeString, raw: " raw ", want: " raw "},
		{name: "unsupported passthrough", typ: TypeUnsupported, raw: "v", want: "v"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := b.Coerce(tc.typ, tc.raw); got != tc.want {
				t.Fatalf("Coerce(%s, %q) = %#v, want %#v", tc.typ, tc.raw, got, tc.want)
			}
		})
	}
}

func TestBinderResolveUsesDefault(t *testing.T) {
	t.Parallel()

	var b Binder
	n := Int("n").WithDefault(7)
	got, ok := b.Resolve(n, "")
	if !ok || got != 7 {
		t.Fatalf("Resolve(empty) = %v, %t; want 7, true", got, ok)
	}
	got, ok = b.Resolve(n, "abc")
	if !ok || got != 0 {
		t.Fatalf("Resolve(abc) = %v, %t; want 0, true", got, ok)
	}
	if _, ok := b.Resolve(Int("m"), ""); ok {
		t.Fatal("expected empty input without default to be unresolved")
	}
}

func TestBinderBindFallsBackToZeroValues(t *testing.T) {
	t.Parallel()

	var b Binder
	params := []Param{
		String("s"),
		Int("i"),
		Float("f").WithDefault(1.5),
		Bool("b"),
		Bool("flag").WithDefault(true),
	}
	form := map[string]string{"i": "12", "b": "1"}
	args := b.Bind(params, func(name string) (string, bool) {
		v, ok := form[name]
		return v, ok
	})

	want := []any{"", 12, 1.5, true, true}
	if len(args) != len(want) {
		t.Fatalf("len(args) = %d, want %d", len(args), len(want))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %#v, want %#v", i, args[i], want[i])
		}
	}
}

func TestFormatDefault(t *testing.T) {
	t.Parallel()

	if got := FormatDefault(Int("n").WithDefault(7)); got != "7" {
		t.Fatalf("FormatDefault(int) = %q", got)
	}
	if got := FormatDefault(Bool("b").WithDefault(false)); got != "0" {
		t.Fatalf("FormatDefault(bool) = %q", got)
	}
	if got := FormatDefault(Float("f").WithDefault(2.5)); got != "2.5" {
		t.Fatalf("FormatDefault(float) = %q", got)
	}
	if got := FormatDefault(String("s")); got != "" {
		t.Fatalf("FormatDefault(no default) = %q", got)
	}
}
