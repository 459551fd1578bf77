package console

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/louisbranch/actionconsole/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
)

const (
	// LangParam selects a language for the request and persists it.
	LangParam = "lang"
	// LangCookieName remembers the selected language.
	LangCookieName = "fs_lang"

	langCookieMaxAge = 365 * 24 * 60 * 60
)

// Localizer formats catalog messages.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Languages resolves the request language among the loaded catalogs.
type Languages struct {
	supported []language.Tag
	matcher   language.Matcher
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// NewLanguages registers the bundle messages and supports every bundle
// locale. The base locale is the fallback. A nil bundle loads the embedded
// catalogs.
func NewLanguages(bundle *catalog.Bundle) (*Languages, error) {
	if bundle == nil {
		loaded, err := catalog.LoadEmbedded()
		if err != nil {
			return nil, fmt.Errorf("load catalogs: %w", err)
		}
		bundle = loaded
	}
	if err := bundle.Register(); err != nil {
		return nil, fmt.Errorf("register catalogs: %w", err)
	}
	base, err := language.Parse(catalog.BaseLocale)
	if err != nil {
		return nil, fmt.Errorf("parse base locale: %w", err)
	}
	supported := []language.Tag{base}
	for _, locale := range bundle.Locales() {
		if locale == catalog.BaseLocale {
			continue
		}
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		supported = append(supported, tag)
	}
	return &Languages{supported: supported, matcher: language.NewMatcher(supported)}, nil
}

// Default returns the fallback language.
func (l *Languages) Default() language.Tag {
	return l.supported[0]
}

// Resolve picks the request language from the query, the cookie and then
// Accept-Language. persist is true when the query selected it.
func (l *Languages) Resolve(r *http.Request) (tag language.Tag, persist bool) {
	if r == nil {
		return l.Default(), false
	}
	if tag, ok := l.lookup(r.URL.Query().Get(LangParam)); ok {
		return tag, true
	}
	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := l.lookup(cookie.Value); ok {
			return tag, false
		}
	}
	if header := strings.TrimSpace(r.Header.Get("Accept-Language")); header != "" {
		if tags, _, err := language.ParseAcceptLanguage(header); err == nil && len(tags) > 0 {
			if _, idx, conf := l.matcher.Match(tags...); conf != language.No && idx >= 0 && idx < len(l.supported) {
				return l.supported[idx], false
			}
		}
	}
	return l.Default(), false
}

// Printer returns a message printer for tag.
func (l *Languages) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}

// Options lists the supported languages, each linking to the current path.
func (l *Languages) Options(r *http.Request, active language.Tag) []LanguageOption {
	options := make([]LanguageOption, 0, len(l.supported))
	for _, tag := range l.supported {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  display.Self.Name(tag),
			URL:    languageURL(r, tag),
			Active: tag.String() == active.String(),
		})
	}
	return options
}

func (l *Languages) lookup(value string) (language.Tag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.Und, false
	}
	parsed, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	for _, tag := range l.supported {
		if tag.String() == parsed.String() {
			return tag, true
		}
	}
	return language.Und, false
}

// SetLanguageCookie remembers tag for later requests.
func SetLanguageCookie(w http.ResponseWriter, r *http.Request, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   langCookieMaxAge,
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func languageURL(r *http.Request, tag language.Tag) string {
	path := "/"
	query := url.Values{}
	if r != nil && r.URL != nil {
		if r.URL.Path != "" {
			path = r.URL.Path
		}
		query = r.URL.Query()
	}
	query.Set(LangParam, tag.String())
	return path + "?" + query.Encode()
}

// T returns a translated string, or the key when no localizer is available.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc == nil {
		if keyString, ok := key.(string); ok {
			return keyString
		}
		return ""
	}
	return loc.Sprintf(key, args...)
}
