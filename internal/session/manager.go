package session

import (
	"context"
	"net/http"
	"time"
)

// Manager binds sessions to the session cookie: it loads the session
// named by the request cookie, creates a fresh one when the cookie is
// missing or stale, and writes the session plus cookie back out.
type Manager struct {
	store  Store
	ttl    time.Duration
	cookie CookieOptions
}

func NewManager(store Store, ttl time.Duration, cookie CookieOptions) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		cookie: cookie,
	}
}

// Load returns the request's session, creating a new one when no valid
// session cookie is present.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		s, err := m.store.Get(ctx, cookie.Value)
		if err != nil {
			return nil, err
		}
		if s != nil && !s.Expired() {
			return s, nil
		}
	}
	return m.new()
}

func (m *Manager) new() (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}
	s := &Session{
		ID:        id,
		Values:    make(map[string]any),
		ExpiresAt: time.Now().Add(m.ttl),
		fresh:     true,
	}
	return s, nil
}

// Save persists the session and (re)issues the session cookie.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	var err error
	if s.fresh {
		err = m.store.Create(ctx, s)
	} else {
		err = m.store.Update(ctx, s)
	}
	if err != nil {
		return err
	}
	s.fresh = false

	m.cookie.Issue(w, s.ID, s.ExpiresAt)
	return nil
}

// Destroy deletes the request's session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		if err := m.store.Delete(ctx, cookie.Value); err != nil {
			return err
		}
	}
	m.cookie.Clear(w)
	return nil
}
