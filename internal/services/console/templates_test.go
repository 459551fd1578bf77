package console

import (
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var sb strings.Builder
	if err := c.Render(context.Background(), &sb); err != nil {
		t.Fatalf("render: %v", err)
	}
	return sb.String()
}

func TestResultBlockEscapesBody(t *testing.T) {
	t.Parallel()

	got := render(t, resultBlock(ResultView{
		ID:       "result-1",
		Title:    "<title>",
		Body:     `say "hi" <b>`,
		Language: "plaintext",
	}, nil))
	for _, marker := range []string{
		`>&lt;title&gt;</section>`,
		`data-copy-target="result-1" onclick="copyInnerText(this.dataset.copyTarget)"`,
		`<pre><code id="result-1" class="rounded shadow-inner whitespace-pre-wrap break-all language-plaintext">say &#34;hi&#34; &lt;b&gt;</code></pre>`,
		`title="console.copy"`,
	} {
		if !strings.Contains(got, marker) {
			t.Fatalf("missing %q in %s", marker, got)
		}
	}
}

func TestActionCardRendersRiskyBoolForm(t *testing.T) {
	t.Parallel()

	got := render(t, actionCard(CardView{
		Name:     "wipe",
		Location: "tasks.go:12",
		Flags:    []Flag{{Icon: "warning", Classes: "text-yellow-500", LabelKey: "console.flag.risky"}},
		Risky:    true,
		Code:     "AB12",
		Params: []ParamView{
			{Name: "force", InputName: "action-param-force", Bool: true, Selected: "0"},
			{Name: "who", InputName: "action-param-who", Value: `"me"`},
		},
	}, nil))
	for _, marker := range []string{
		`<article id="wipe"`,
		`<form method="post" id="action-form-wipe" action="#wipe">`,
		`<input type="hidden" name="action-code" value="AB12">`,
		`<ion-icon name="warning" class="text-yellow-500" title="console.flag.risky"></ion-icon>`,
		`<option value="1">console.bool.true</option><option value="0" selected>console.bool.false</option>`,
		`id="action-form-wipe-action-param-who" name="action-param-who" value="&#34;me&#34;" form="action-form-wipe"`,
		`name="action-confirmation" placeholder="AB12" form="action-form-wipe"`,
		`title="console.defined_at"`,
	} {
		if !strings.Contains(got, marker) {
			t.Fatalf("missing %q in %s", marker, got)
		}
	}
}

func TestActionCardHidesFormWhenInvalid(t *testing.T) {
	t.Parallel()

	got := render(t, actionCard(CardView{Name: "broken", Invalid: "bad <sig>"}, nil))
	if strings.Contains(got, "<form") {
		t.Fatalf("invalid card rendered a form: %s", got)
	}
	if !strings.Contains(got, `<p class="text-red-500 text-sm pt-3">bad &lt;sig&gt;</p>`) {
		t.Fatalf("missing validation message: %s", got)
	}
}

func TestLanguageSwitcherSanitizesLinks(t *testing.T) {
	t.Parallel()

	view := PageView{Languages: []LanguageOption{
		{Tag: "en-US", Label: "English", URL: "/?lang=en-US&x=1", Active: true},
		{Tag: "pt-BR", Label: "Português", URL: "javascript:alert(1)"},
	}}
	got := render(t, languageSwitcher(view))
	for _, marker := range []string{
		`<a href="/?lang=en-US&amp;x=1" hreflang="en-US" aria-current="true" class="font-bold">English</a>`,
		`<a href="about:invalid#TemplFailedSanitizationURL" hreflang="pt-BR">Português</a>`,
	} {
		if !strings.Contains(got, marker) {
			t.Fatalf("missing %q in %s", marker, got)
		}
	}

	view.Languages = view.Languages[:1]
	if got := render(t, languageSwitcher(view)); got != "" {
		t.Fatalf("single language rendered %q", got)
	}
}
