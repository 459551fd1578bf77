package catalog

import (
	"testing"
	"testing/fstest"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestLoadEmbeddedLocalesAreComplete(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	locales := bundle.Locales()
	if len(locales) != 2 || locales[0] != "en-US" || locales[1] != "pt-BR" {
		t.Fatalf("locales = %v", locales)
	}
	for key := range bundle.locales[BaseLocale] {
		if _, ok := bundle.locales["pt-BR"][key]; !ok {
			t.Fatalf("pt-BR is missing %q", key)
		}
	}
}

func TestMessageFallsBackToBaseLocale(t *testing.T) {
	bundle, err := LoadFromFS(fstest.MapFS{
		"locales/en-US/console.yaml": {Data: []byte("locale: en-US\nnamespace: console\nmessages:\n  console.run: Run\n  console.copy: Copy\n")},
		"locales/pt-BR/console.yaml": {Data: []byte("locale: pt-BR\nnamespace: console\nmessages:\n  console.run: Executar\n")},
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := bundle.Message("pt-BR", "console.run"); got != "Executar" {
		t.Fatalf("pt-BR run = %q", got)
	}
	if got, ok := bundle.Message("pt-BR", "console.copy"); !ok || got != "Copy" {
		t.Fatalf("fallback copy = %q, %t", got, ok)
	}
	if _, ok := bundle.Message("fr-FR", "console.missing"); ok {
		t.Fatal("expected missing key")
	}
}

func TestLoadFromFSRejectsInvalidCatalogs(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"empty fs": {},
		"no base locale": {
			"locales/pt-BR/console.yaml": {Data: []byte("locale: pt-BR\nnamespace: console\nmessages:\n  console.a: a\n")},
		},
		"locale mismatch": {
			"locales/en-US/console.yaml": {Data: []byte("locale: pt-BR\nnamespace: console\nmessages:\n  console.a: a\n")},
		},
		"key outside namespace": {
			"locales/en-US/console.yaml": {Data: []byte("locale: en-US\nnamespace: console\nmessages:\n  other.a: a\n")},
		},
		"bad yaml": {
			"locales/en-US/console.yaml": {Data: []byte("locale: [\n")},
		},
	}
	for name, fsys := range cases {
		if _, err := LoadFromFS(fsys); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestRegisterInstallsPrinterMessages(t *testing.T) {
	bundle, err := LoadEmbedded()
	if err != nil {
		t.Fatalf("load embedded catalogs: %v", err)
	}
	if err := bundle.Register(); err != nil {
		t.Fatalf("register: %v", err)
	}
	p := message.NewPrinter(language.MustParse("pt-BR"))
	if got := p.Sprintf("console.run"); got != "Executar" {
		t.Fatalf("pt-BR printer = %q", got)
	}
	p = message.NewPrinter(language.Portuguese)
	if got := p.Sprintf("console.run"); got != "Executar" {
		t.Fatalf("pt printer = %q", got)
	}
}
