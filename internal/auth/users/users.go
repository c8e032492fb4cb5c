package users

import (
	"context"
	"time"

	"hybrid-auth-service/internal/auth/profile"
	"hybrid-auth-service/internal/session"

	"github.com/google/uuid"
)

// User is the host application's user record. The workflow reads it by
// primary key or asks the get-user callback to create one; it never
// deletes or updates users itself.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"email_verified"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Password is the stored credential hash. It is stripped from every
	// outward projection and never serialized.
	Password string `json:"-"`

	// SocialProfile is attached by the reconciliation workflow.
	SocialProfile *profile.SocialProfile `json:"social_profile,omitempty"`
}

// AsMap renders the user as a plain mapping, the shape used when the
// structured-record option is off. The password field is included here
// and removed by the projection step, which knows its configured name.
func (u *User) AsMap(passwordField string) map[string]any {
	m := map[string]any{
		"id":             u.ID.String(),
		"email":          u.Email,
		"email_verified": u.EmailVerified,
		"name":           u.Name,
		"status":         u.Status,
		"created_at":     u.CreatedAt,
		"updated_at":     u.UpdatedAt,
		passwordField:    u.Password,
	}
	if u.SocialProfile != nil {
		m["social_profile"] = u.SocialProfile
	}
	return m
}

// Finder looks up a user by primary key under a named finder strategy.
// FindByID returns (nil, nil) when no user matches.
type Finder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
}

// GetUserFunc resolves a brand-new social profile to a user record,
// typically by linking on email or creating a user. It must return a
// persisted user; anything else is a host-application contract
// violation surfaced as a server error.
type GetUserFunc func(
	ctx context.Context,
	p *profile.SocialProfile,
	sess *session.Session,
) (*User, error)
