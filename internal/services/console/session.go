package console

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/louisbranch/actionconsole/internal/action/engine"
)

const (
	// SessionCookieName holds the opaque session id.
	SessionCookieName = "actionconsole_session"
	// resultsKey stores the entries of the last POST until the next GET.
	resultsKey = "results"
)

// SessionStore keeps per-session values between requests.
type SessionStore interface {
	Get(ctx context.Context, sessionID, key string) ([]byte, bool, error)
	Set(ctx context.Context, sessionID, key string, value []byte) error
	Delete(ctx context.Context, sessionID, key string) error
}

// MemoryStore is a process-local SessionStore.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]map[string][]byte{}}
}

// Get returns a copy of the stored value.
func (s *MemoryStore) Get(_ context.Context, sessionID, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.sessions[sessionID][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set stores a copy of value.
func (s *MemoryStore) Set(_ context.Context, sessionID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.sessions[sessionID]
	if !ok {
		values = map[string][]byte{}
		s.sessions[sessionID] = values
	}
	values[key] = append([]byte(nil), value...)
	return nil
}

// Delete removes the value and drops sessions left empty.
func (s *MemoryStore) Delete(_ context.Context, sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	delete(values, key)
	if len(values) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}

// saveResults stores entries for the next page view.
func saveResults(ctx context.Context, store SessionStore, sessionID string, entries []engine.Entry) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	if err := store.Set(ctx, sessionID, resultsKey, payload); err != nil {
		return fmt.Errorf("store results: %w", err)
	}
	return nil
}

// consumeResults reads and deletes the stored entries.
func consumeResults(ctx context.Context, store SessionStore, sessionID string) ([]engine.Entry, error) {
	payload, ok, err := store.Get(ctx, sessionID, resultsKey)
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}
	if !ok {
		return nil, nil
	}
	if err := store.Delete(ctx, sessionID, resultsKey); err != nil {
		return nil, fmt.Errorf("delete results: %w", err)
	}
	var entries []engine.Entry
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("decode results: %w", err)
	}
	return entries, nil
}

// readSessionID returns the session id carried by the request, if valid.
func readSessionID(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(strings.TrimSpace(cookie.Value))
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// ensureSessionID returns the request session id, issuing a new cookie when
// the request has none.
func ensureSessionID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := readSessionID(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func isHTTPS(r *http.Request) bool {
	if r == nil {
		return false
	}
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
