package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/louisbranch/actionconsole/internal/action"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func quietEngine(opts ...Option) *Engine {
	return New(append([]Option{WithLogger(log.New(io.Discard, "", 0))}, opts...)...)
}

func titles(entries []Entry) string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Title)
	}
	return strings.Join(out, ",")
}

func TestHandleOutputOnly(t *testing.T) {
	t.Parallel()

	a := action.MustFromFunc(func(out io.Writer) {
		fmt.Fprint(out, "hi")
	})
	entries := quietEngine().Handle(context.Background(), a, nil)
	if len(entries) != 1 {
		t.Fatalf("entries = %s, want Output only", titles(entries))
	}
	if entries[0].Title != TitleOutput || entries[0].Body != "hi" || entries[0].Language != LanguagePlain {
		t.Fatalf("unexpected entry %+v", entries[0])
	}
}

func TestHandleValueOfLoadedConstant(t *testing.T) {
	t.Parallel()

	reg := action.NewRegistry()
	if err := action.Load(reg, action.Unnamed(42)); err != nil {
		t.Fatalf("load: %v", err)
	}
	a, _ := reg.Resolve("anonymous-0")
	entries := quietEngine().Handle(context.Background(), a, nil)
	if titles(entries) != TitleValue {
		t.Fatalf("entries = %s, want Value", titles(entries))
	}
	if !strings.Contains(entries[0].Body, "42") {
		t.Fatalf("value body %q does not mention 42", entries[0].Body)
	}
	if entries[0].Language != LanguageCode {
		t.Fatalf("language = %q", entries[0].Language)
	}
}

func TestHandleFailureIsContained(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	a := action.MustFromFunc(func(out io.Writer) (int, error) {
		fmt.Fprint(out, "before")
		return 5, fmt.Errorf("wrapped: %w", boom)
	}, action.WithName("risky-sum"))
	entries := quietEngine().Handle(context.Background(), a, nil)
	if titles(entries) != "Output,Throwable" {
		t.Fatalf("entries = %s, want Output,Throwable", titles(entries))
	}
	body := entries[1].Body
	for _, marker := range []string{"wrapped: boom", "caused by *errors.errorString: boom", "in action risky-sum (", "engine_test.go:"} {
		if !strings.Contains(body, marker) {
			t.Fatalf("throwable body missing %q: %s", marker, body)
		}
	}
}

func TestHandleRecoversPanics(t *testing.T) {
	t.Parallel()

	a := action.MustFromFunc(func() string { panic("kaboom") })
	entries := quietEngine().Handle(context.Background(), a, nil)
	if titles(entries) != TitleThrowable {
		t.Fatalf("entries = %s, want Throwable", titles(entries))
	}
	body := entries[0].Body
	if !strings.Contains(body, "panic: kaboom") || !strings.Contains(body, "stack:") {
		t.Fatalf("unexpected throwable body: %s", body)
	}
}

func TestHandleFalsyResultProducesNothing(t *testing.T) {
	t.Parallel()

	for _, value := range []any{nil, false, 0, "", "0", []int{}, map[string]int{}} {
		a := action.Value(value)
		if entries := quietEngine().Handle(context.Background(), a, nil); len(entries) != 0 {
			t.Fatalf("value %#v produced %s", value, titles(entries))
		}
	}
	if got := OrDone(nil); len(got) != 1 || got[0] != StatusDone() {
		t.Fatalf("OrDone(nil) = %+v", got)
	}
}

func TestHandleNilAction(t *testing.T) {
	t.Parallel()

	entries := quietEngine().Handle(context.Background(), nil, nil)
	if titles(entries) != TitleThrowable {
		t.Fatalf("entries = %s, want Throwable", titles(entries))
	}
}

func TestHandleRecordsSpan(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	var logs bytes.Buffer
	eng := New(WithTracerProvider(tp), WithLogger(log.New(&logs, "", 0)))

	a := action.New(func(context.Context, io.Writer, []any) (any, error) {
		return nil, errors.New("nope")
	}, action.WithName("failing"))
	eng.Handle(context.Background(), a, nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	span := spans[0]
	if span.Name() != "action.handle" {
		t.Fatalf("span name = %q", span.Name())
	}
	if span.Status().Code != codes.Error {
		t.Fatalf("span status = %v, want Error", span.Status().Code)
	}
	found := false
	for _, attr := range span.Attributes() {
		if string(attr.Key) == "action.name" && attr.Value.AsString() == "failing" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected action.name attribute on span")
	}
	if !strings.Contains(logs.String(), `action "failing" failed: nope`) {
		t.Fatalf("unexpected log output %q", logs.String())
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	var nilPtr *int
	one := 1
	for _, tc := range []struct {
		value any
		want  bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{0, false},
		{int64(-1), true},
		{0.0, false},
		{0.1, true},
		{"", false},
		{"0", false},
		{"00", true},
		{[]string{}, false},
		{[]string{"a"}, true},
		{nilPtr, false},
		{&one, true},
		{struct{}{}, true},
	} {
		if got := Truthy(tc.value); got != tc.want {
			t.Fatalf("Truthy(%#v) = %t, want %t", tc.value, got, tc.want)
		}
	}
}
