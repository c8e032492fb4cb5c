package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionConsume(t *testing.T) {
	s := &Session{Values: map[string]any{"redirect": "/account"}}

	v, ok := s.Consume("redirect")
	require.True(t, ok)
	assert.Equal(t, "/account", v)

	_, ok = s.Consume("redirect")
	assert.False(t, ok, "consume removes the value")

	_, ok = s.Get("redirect")
	assert.False(t, ok)
}

func TestSessionSetOnNilValues(t *testing.T) {
	s := &Session{}
	s.Set("k", 1)

	v, ok := s.Get("k")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	s := &Session{
		ID:        "sid-1",
		Values:    map[string]any{"user": "ann"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, s))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ann", got.Values["user"])

	// Stored sessions are isolated from caller mutation.
	got.Values["user"] = "mallory"
	again, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "ann", again.Values["user"])

	require.NoError(t, store.Delete(ctx, "sid-1"))
	gone, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestMemoryStoreMissIsNil(t *testing.T) {
	got, err := NewMemoryStore().Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreEvictsExpired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Create(ctx, &Session{
		ID:        "stale",
		Values:    map[string]any{"user": "ann"},
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	got, err := store.Get(ctx, "stale")
	require.NoError(t, err)
	assert.Nil(t, got, "expired sessions read as missing")
}

func TestManagerLoadCreatesWhenNoCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, CookieOptions{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s, err := m.Load(context.Background(), req)
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.True(t, s.fresh)
	assert.False(t, s.Expired())
}

func TestManagerSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, time.Hour, CookieOptions{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	s, err := m.Load(ctx, req)
	require.NoError(t, err)
	s.Set("user", "ann")

	w := httptest.NewRecorder()
	require.NoError(t, m.Save(ctx, w, s))
	assert.False(t, s.fresh, "save clears the fresh flag")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, s.ID, cookies[0].Value)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	loaded, err := m.Load(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, s.ID, loaded.ID)
	v, ok := loaded.Get("user")
	require.True(t, ok)
	assert.Equal(t, "ann", v)
}

func TestManagerLoadReplacesExpiredSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, time.Hour, CookieOptions{})

	require.NoError(t, store.Create(ctx, &Session{
		ID:        "stale",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale"})

	s, err := m.Load(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", s.ID)
	assert.True(t, s.fresh)
}

func TestManagerDestroy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	m := NewManager(store, time.Hour, CookieOptions{})

	require.NoError(t, store.Create(ctx, &Session{
		ID:        "sid-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "sid-1"})
	w := httptest.NewRecorder()

	require.NoError(t, m.Destroy(ctx, w, req))

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestGenerateIDUnique(t *testing.T) {
	a, err := GenerateID()
	require.NoError(t, err)
	b, err := GenerateID()
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
