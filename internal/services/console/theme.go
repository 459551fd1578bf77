package console

import (
	"net/http"
	"strings"
)

// DarkModeCookie is written by the page script when the theme is toggled.
const DarkModeCookie = "dark-mode"

const (
	iconSunny = "sunny"
	iconMoon  = "moon"
)

// ThemeState is the colour scheme requested by the browser.
type ThemeState struct {
	Dark bool
}

// ThemeFromRequest reads the dark-mode cookie. Empty and "0" mean light.
func ThemeFromRequest(r *http.Request) ThemeState {
	if r == nil {
		return ThemeState{}
	}
	cookie, err := r.Cookie(DarkModeCookie)
	if err != nil {
		return ThemeState{}
	}
	value := strings.TrimSpace(cookie.Value)
	return ThemeState{Dark: value != "" && value != "0"}
}

// HTMLClass is added to the root element.
func (t ThemeState) HTMLClass() string {
	if t.Dark {
		return "dark"
	}
	return ""
}

// Icon names the toggle icon: the sun switches back to light.
func (t ThemeState) Icon() string {
	if t.Dark {
		return iconSunny
	}
	return iconMoon
}
