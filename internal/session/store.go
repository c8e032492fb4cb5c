package session

import (
	"context"
	"time"
)

// Session is a per-browser-session key-value store. The authenticated
// user projection lives under the configured auth key; transient values
// (the post-login redirect target, the in-flight provider name) live
// under fixed keys owned by the auth handler.
type Session struct {
	ID        string         `json:"id"`
	Values    map[string]any `json:"values"`
	ExpiresAt time.Time      `json:"expires_at"`

	// fresh marks a session the manager created for this request and
	// has not yet persisted.
	fresh bool
}

// Get returns the value stored under key.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.Values[key]
	return v, ok
}

// Set stores a value under key.
func (s *Session) Set(key string, value any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = value
}

// Delete removes the value stored under key.
func (s *Session) Delete(key string) {
	delete(s.Values, key)
}

// Consume returns the value stored under key and removes it, so a
// second read misses.
func (s *Session) Consume(key string) (any, bool) {
	v, ok := s.Values[key]
	if ok {
		delete(s.Values, key)
	}
	return v, ok
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store defines how sessions are stored and retrieved. Get returns
// (nil, nil) when no session exists for the id.
type Store interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, sessionID string) error
}
