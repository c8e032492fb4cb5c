package profile

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfileIsNew(t *testing.T) {
	p := New("google")

	assert.True(t, p.IsNew())
	assert.False(t, p.Dirty())
	assert.Equal(t, "google", p.Provider)
}

func TestPatchSetsMappedColumns(t *testing.T) {
	p := New("google")
	p.Patch(MapAttributes(map[string]any{
		"id":            42,
		"firstname":     "Ann",
		"sex":           "f",
		"emailVerified": true,
		"email":         "ann@example.com",
		"locale":        "en",
	}))

	assert.True(t, p.Dirty())
	assert.Equal(t, "42", p.Identifier)
	assert.Equal(t, "Ann", p.FirstName)
	assert.Equal(t, "f", p.Gender)
	assert.True(t, p.EmailVerified)
	assert.Equal(t, "ann@example.com", p.Email)
	assert.Equal(t, "en", p.Extra["locale"])
}

func TestPatchIsCleanWhenNothingChanged(t *testing.T) {
	attrs := MapAttributes(map[string]any{
		"id":        "sub-1",
		"firstname": "Ann",
		"locale":    "en",
	})

	p := New("google")
	p.Patch(attrs)
	p.MarkSaved()
	require.False(t, p.Dirty())

	p.Patch(attrs)
	assert.False(t, p.Dirty())

	p.Patch(MapAttributes(map[string]any{"firstname": "Anne"}))
	assert.True(t, p.Dirty())
	assert.Equal(t, "Anne", p.FirstName)
}

func TestLinkUser(t *testing.T) {
	id := uuid.New()

	p := New("github")
	p.MarkSaved()

	p.LinkUser(id)
	assert.True(t, p.Dirty())
	require.True(t, p.UserID.Valid)
	assert.Equal(t, id, p.UserID.UUID)

	p.MarkSaved()
	p.LinkUser(id)
	assert.False(t, p.Dirty(), "relinking the same user must not dirty the profile")
}
