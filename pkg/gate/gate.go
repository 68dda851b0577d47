// Package gate is the session password prompt in front of the terminal
// calendar. It keeps casual eyes out; it is not access control.
package gate

import (
	"crypto/subtle"
	"sync"
)

// Gate remembers, for the life of the process, whether the secret was given.
type Gate struct {
	Secret string

	mu     sync.Mutex
	opened bool
}

// New returns a closed gate for secret. An empty secret is always open.
func New(secret string) *Gate {
	return &Gate{Secret: secret}
}

// Open reports whether the session is unlocked.
func (g *Gate) Open() bool {
	if g == nil || g.Secret == "" {
		return true
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opened
}

// Unlock opens the gate when attempt matches the secret.
func (g *Gate) Unlock(attempt string) bool {
	if g.Open() {
		return true
	}
	if !secureCompare(attempt, g.Secret) {
		return false
	}
	g.mu.Lock()
	g.opened = true
	g.mu.Unlock()
	return true
}

// Lock closes the gate again.
func (g *Gate) Lock() {
	if g == nil {
		return
	}
	g.mu.Lock()
	g.opened = false
	g.mu.Unlock()
}

func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
