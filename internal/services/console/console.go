// Package console serves the browser front-end: one card per action, a form
// per valid action and a panel with the results of the last submission.
package console

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/louisbranch/actionconsole/internal/action"
	"github.com/louisbranch/actionconsole/internal/action/confirm"
	"github.com/louisbranch/actionconsole/internal/action/engine"
	"github.com/louisbranch/actionconsole/internal/platform/httpx"
)

// Config wires the console handler.
type Config struct {
	Registry *action.Registry
	Engine   *engine.Engine
	Gate     *confirm.Gate
	// Store defaults to a MemoryStore.
	Store SessionStore
	// Validator defaults to action.SignatureValidator.
	Validator action.Validator
	// Languages defaults to the embedded catalogs.
	Languages *Languages
	Logger    *log.Logger
}

// Handler serves GET and POST on the console root.
type Handler struct {
	registry  *action.Registry
	engine    *engine.Engine
	gate      *confirm.Gate
	store     SessionStore
	validator action.Validator
	flags     FlagClassifier
	binder    action.Binder
	languages *Languages
	logger    *log.Logger
}

// New validates cfg and fills in defaults.
func New(cfg Config) (*Handler, error) {
	if cfg.Registry == nil {
		return nil, errors.New("action registry is required")
	}
	h := &Handler{
		registry:  cfg.Registry,
		engine:    cfg.Engine,
		gate:      cfg.Gate,
		store:     cfg.Store,
		validator: cfg.Validator,
		languages: cfg.Languages,
		logger:    cfg.Logger,
	}
	if h.engine == nil {
		h.engine = engine.New()
	}
	if h.gate == nil {
		h.gate = confirm.NewGate()
	}
	if h.store == nil {
		h.store = NewMemoryStore()
	}
	if h.validator == nil {
		h.validator = action.SignatureValidator{}
	}
	if h.languages == nil {
		languages, err := NewLanguages(nil)
		if err != nil {
			return nil, err
		}
		h.languages = languages
	}
	if h.logger == nil {
		h.logger = log.Default()
	}
	h.flags = FlagClassifier{Validator: h.validator}
	return h, nil
}

// NewHandler composes the console with its middleware.
func NewHandler(cfg Config) (http.Handler, error) {
	h, err := New(cfg)
	if err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle("/", httpx.RequireMethods(http.MethodGet, http.MethodPost)(h))
	return httpx.Chain(mux,
		httpx.RecoverPanic(h.logger),
		httpx.RequestID("web"),
		httpx.RequestLogger(h.logger),
	), nil
}

// ServeHTTP routes the console root.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPost:
		h.handleRun(w, r)
	default:
		h.handleIndex(w, r)
	}
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)

	var entries []engine.Entry
	if sessionID, ok := readSessionID(r); ok {
		consumed, err := consumeResults(ctx, h.store, sessionID)
		if err != nil {
			h.logger.Printf("console: %v", err)
		}
		entries = consumed
	}

	tag, persist := h.languages.Resolve(r)
	if persist {
		SetLanguageCookie(w, r, tag)
	}
	view := PageView{
		Lang:      tag.String(),
		Loc:       h.languages.Printer(tag),
		Theme:     ThemeFromRequest(r),
		Languages: h.languages.Options(r, tag),
		Cards:     buildCards(h.registry.ResolveAll(), h.validator, h.flags, h.gate),
		Results:   buildResults(entries),
	}

	var buf bytes.Buffer
	if err := Page(view).Render(ctx, &buf); err != nil {
		h.logger.Printf("console: render page: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := httpx.WriteHTML(w, http.StatusOK, buf.String()); err != nil {
		h.logger.Printf("console: write page: %v", err)
	}
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	if !requireSameOrigin(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	ctx := httpx.RequestContext(r)
	name := r.FormValue(inputActionName)
	entries := h.run(ctx, name, r.Form)

	sessionID := ensureSessionID(w, r)
	if err := saveResults(ctx, h.store, sessionID, entries); err != nil {
		h.logger.Printf("console: %v", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	location := (&url.URL{Path: "/", Fragment: name}).String()
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// run resolves, checks and invokes the submitted action.
func (h *Handler) run(ctx context.Context, name string, form url.Values) []engine.Entry {
	a, ok := h.registry.Resolve(name)
	if !ok {
		return []engine.Entry{engine.Validation("Action not found: " + name)}
	}
	if status := h.validator.Validate(a); status.IsInvalid() {
		return []engine.Entry{engine.Validation(status.Message())}
	}
	if !h.gate.IsConfirmed(a, form.Get(inputConfirmation)) {
		return []engine.Entry{engine.Validation("Invalid confirmation code")}
	}
	args := h.binder.Bind(a.Params(), func(param string) (string, bool) {
		values, ok := form[inputParamPrefix+param]
		if !ok || len(values) == 0 {
			return "", false
		}
		return values[0], true
	})
	return engine.OrDone(h.engine.Handle(ctx, a, args))
}
