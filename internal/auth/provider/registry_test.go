package provider

import (
	"context"
	"errors"
	"testing"

	"hybrid-auth-service/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name string
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) AuthCodeURL(string, string) string { return "" }

func (s *stubProvider) ExchangeCode(context.Context, string, string) (*auth.Identity, error) {
	return nil, errors.New("not implemented")
}

func TestRegistryGet(t *testing.T) {
	r := NewRegistry(&stubProvider{name: "google"}, &stubProvider{name: "github"})

	p, err := r.Get("google")
	require.NoError(t, err)
	assert.Equal(t, "google", p.Name())
}

func TestRegistryUnknownProviderIsRecoverable(t *testing.T) {
	r := NewRegistry(&stubProvider{name: "google"})

	_, err := r.Get("facebook")
	require.Error(t, err)

	authErr, ok := auth.IsRecoverable(err)
	require.True(t, ok, "unknown provider must be an expected failure")
	assert.Equal(t, auth.CodeProviderFailure, authErr.Code)
	assert.Contains(t, err.Error(), "facebook")
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry(
		&stubProvider{name: "google"},
		&stubProvider{name: "github"},
		&stubProvider{name: "apple"},
	)

	assert.Equal(t, []string{"apple", "github", "google"}, r.Names())
}
