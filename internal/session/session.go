// Package session manages the credential used against the analysis
// service. The dashboard works unauthenticated against a local service;
// a key only becomes mandatory when the configured endpoint requires it.
package session

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Session is the current credential state.
type Session struct {
	APIKey string
	Source string
}

// Authenticated reports whether a key is present.
func (s Session) Authenticated() bool { return s.APIKey != "" }

// Provider exposes the current session and change notification.
type Provider interface {
	CurrentSession() Session
	OnSessionChange(fn func(Session))
	SignIn(key string) error
	SignOut()
}

// EnvProvider sources the key from the environment, loading .env first
// so local development needs no exported variables. SignIn overrides
// for the process lifetime only; nothing is persisted.
type EnvProvider struct {
	mu        sync.RWMutex
	current   Session
	listeners []func(Session)
}

// NewEnvProvider loads .env (if present) and captures EDGEDESK_API_KEY.
func NewEnvProvider() *EnvProvider {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	p := &EnvProvider{}
	if key := os.Getenv("EDGEDESK_API_KEY"); key != "" {
		p.current = Session{APIKey: key, Source: "env"}
	}
	return p
}

// CurrentSession returns the active session.
func (p *EnvProvider) CurrentSession() Session {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// OnSessionChange registers a callback fired on SignIn and SignOut.
func (p *EnvProvider) OnSessionChange(fn func(Session)) {
	p.mu.Lock()
	p.listeners = append(p.listeners, fn)
	p.mu.Unlock()
}

// SignIn installs a key for this process.
func (p *EnvProvider) SignIn(key string) error {
	p.mu.Lock()
	p.current = Session{APIKey: key, Source: "manual"}
	listeners := append(([]func(Session))(nil), p.listeners...)
	s := p.current
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(s)
	}
	return nil
}

// SignOut clears the active key.
func (p *EnvProvider) SignOut() {
	p.mu.Lock()
	p.current = Session{}
	listeners := append(([]func(Session))(nil), p.listeners...)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(Session{})
	}
}
