package auth

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string // e.g. "google", "github"
	ProviderUserID string // provider-scoped unique user identifier (sub)
	Email          string // email returned by provider
	EmailVerified  bool   // whether provider asserts email ownership

	// Raw holds the profile fields as the provider reports them
	// ("id", "firstname", "sex", "pictureURL", ...). The profile layer
	// renames them to stored attribute names; unknown fields pass
	// through unchanged.
	Raw map[string]any
}
