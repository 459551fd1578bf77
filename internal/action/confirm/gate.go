// Package confirm gates risky actions behind a short memoized code.
//
// The code is a speed bump against accidental triggering from an exposed
// console, not a security control: it is drawn from a non-cryptographic source,
// never expires and stays valid for the lifetime of the process.
package confirm

import (
	"math/rand/v2"
	"sync"

	"github.com/louisbranch/actionconsole/internal/action"
)

const (
	codeLength   = 4
	codeAlphabet = "abcdefghijklmnopqrstuvwxyz"
)

// Gate hands out and checks confirmation codes keyed by action name.
type Gate struct {
	mu    sync.Mutex
	codes map[string]string
	intN  func(n int) int
}

// Option configures a Gate.
type Option func(*Gate)

// WithRand draws code characters from r.
func WithRand(r *rand.Rand) Option {
	return func(g *Gate) {
		if r != nil {
			g.intN = r.IntN
		}
	}
}

// NewGate returns a gate with an empty code cache.
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		codes: map[string]string{},
		intN:  rand.IntN,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// CodeFor returns the code for the action, generating it on first request.
func (g *Gate) CodeFor(a *action.Action) string {
	if g == nil || a == nil {
		return ""
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if code, ok := g.codes[a.Name()]; ok {
		return code
	}
	code := g.generate()
	g.codes[a.Name()] = code
	return code
}

// IsConfirmed reports whether the action may run. Non-risky actions always may;
// risky ones need the exact, case-sensitive code.
func (g *Gate) IsConfirmed(a *action.Action, submitted string) bool {
	if a == nil {
		return false
	}
	if !a.Risky() {
		return true
	}
	if g == nil {
		return false
	}
	return submitted == g.CodeFor(a)
}

func (g *Gate) generate() string {
	buf := make([]byte, codeLength)
	for i := range buf {
		buf[i] = codeAlphabet[g.intN(len(codeAlphabet))]
	}
	return string(buf)
}
