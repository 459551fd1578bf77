package console

import (
	"net/http"
	"net/url"
	"strings"
)

// requireSameOrigin rejects state-changing requests whose Origin, or Referer
// when Origin is absent, names another host.
func requireSameOrigin(w http.ResponseWriter, r *http.Request) bool {
	if origin := strings.TrimSpace(r.Header.Get("Origin")); origin != "" {
		if !sameOrigin(origin, r) {
			http.Error(w, "cross-origin request rejected", http.StatusForbidden)
			return false
		}
		return true
	}
	if referer := strings.TrimSpace(r.Header.Get("Referer")); referer != "" {
		if !sameOrigin(referer, r) {
			http.Error(w, "cross-origin request rejected", http.StatusForbidden)
			return false
		}
	}
	return true
}

func sameOrigin(raw string, r *http.Request) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" && !strings.EqualFold(parsed.Scheme, requestScheme(r)) {
		return false
	}
	return true
}

func requestScheme(r *http.Request) string {
	if isHTTPS(r) {
		return "https"
	}
	return "http"
}
