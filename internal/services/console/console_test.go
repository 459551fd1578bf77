package console

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/louisbranch/actionconsole/internal/action"
	"github.com/louisbranch/actionconsole/internal/action/engine"
	"golang.org/x/text/language"
)

func TestMemoryStoreConsumeResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()
	entries := []engine.Entry{engine.StatusDone(), engine.Validation("nope")}
	if err := saveResults(ctx, store, "s1", entries); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := consumeResults(ctx, store, "s1")
	if err != nil || !reflect.DeepEqual(got, entries) {
		t.Fatalf("consume = %+v, %v", got, err)
	}
	again, err := consumeResults(ctx, store, "s1")
	if err != nil || again != nil {
		t.Fatalf("second consume = %+v, %v", again, err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("expected empty session to be dropped, got %v", store.sessions)
	}
}

func TestSessionCookie(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	id := ensureSessionID(rr, req)
	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value != id || !cookies[0].HttpOnly || !cookies[0].Secure {
		t.Fatalf("cookies = %+v", cookies)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: " " + id + " "})
	if got, ok := readSessionID(req); !ok || got != id {
		t.Fatalf("readSessionID = %q, %v", got, ok)
	}
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "not-a-uuid"})
	if _, ok := readSessionID(req); ok {
		t.Fatal("expected malformed session id to be ignored")
	}
}

func TestThemeFromRequest(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		cookie string
		dark   bool
	}{
		{cookie: "", dark: false},
		{cookie: "0", dark: false},
		{cookie: "1", dark: true},
		{cookie: "yes", dark: true},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: DarkModeCookie, Value: tc.cookie})
		}
		theme := ThemeFromRequest(req)
		if theme.Dark != tc.dark {
			t.Fatalf("cookie %q: dark = %v", tc.cookie, theme.Dark)
		}
	}
	if (ThemeState{Dark: true}).Icon() != "sunny" || (ThemeState{}).Icon() != "moon" {
		t.Fatal("unexpected theme icons")
	}
	if (ThemeState{Dark: true}).HTMLClass() != "dark" || (ThemeState{}).HTMLClass() != "" {
		t.Fatal("unexpected theme classes")
	}
}

func TestFlagClassifier(t *testing.T) {
	t.Parallel()

	registry := action.NewRegistry()
	if err := action.Load(registry,
		action.Unnamed("value"),
		action.Named("risky", action.MustFromFunc(func() {})),
		action.Named("loose", action.MustFromFunc(func(string) {}, action.WithRisky(false), action.WithParams(action.Untyped("x")))),
	); err != nil {
		t.Fatalf("load: %v", err)
	}
	icons := func(name string) []string {
		a, _ := registry.Resolve(name)
		var out []string
		for _, flag := range (FlagClassifier{}).Classify(a) {
			out = append(out, flag.Icon)
		}
		return out
	}
	if got := icons("anonymous-0"); !reflect.DeepEqual(got, []string{"text", "shapes"}) {
		t.Fatalf("anonymous value flags = %v", got)
	}
	if got := icons("risky"); !reflect.DeepEqual(got, []string{"warning"}) {
		t.Fatalf("risky flags = %v", got)
	}
	if got := icons("loose"); !reflect.DeepEqual(got, []string{"alert-circle"}) {
		t.Fatalf("invalid flags = %v", got)
	}
}

func TestLanguagesResolve(t *testing.T) {
	t.Parallel()

	languages, err := NewLanguages(nil)
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	for _, tc := range []struct {
		name    string
		target  string
		cookie  string
		accept  string
		want    string
		persist bool
	}{
		{name: "default", target: "/", want: "en-US"},
		{name: "query", target: "/?lang=pt-BR", want: "pt-BR", persist: true},
		{name: "unknown query", target: "/?lang=fr", want: "en-US"},
		{name: "cookie", target: "/", cookie: "pt-BR", want: "pt-BR"},
		{name: "accept language", target: "/", accept: "pt-BR,pt;q=0.9", want: "pt-BR"},
		{name: "unsupported accept language", target: "/", accept: "ja", want: "en-US"},
	} {
		req := httptest.NewRequest(http.MethodGet, tc.target, nil)
		if tc.cookie != "" {
			req.AddCookie(&http.Cookie{Name: LangCookieName, Value: tc.cookie})
		}
		if tc.accept != "" {
			req.Header.Set("Accept-Language", tc.accept)
		}
		tag, persist := languages.Resolve(req)
		if tag.String() != tc.want || persist != tc.persist {
			t.Fatalf("%s: Resolve = %s, %v; want %s, %v", tc.name, tag, persist, tc.want, tc.persist)
		}
	}

	printer := languages.Printer(language.MustParse("pt-BR"))
	if got := T(printer, "console.defined_at", "main.go:3"); got != "Definida em main.go:3" {
		t.Fatalf("printer = %q", got)
	}
	if got := T(nil, "console.run"); got != "console.run" {
		t.Fatalf("nil localizer = %q", got)
	}
}
