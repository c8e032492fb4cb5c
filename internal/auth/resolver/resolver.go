package resolver

import (
	"context"

	"hybrid-auth-service/internal/auth"
	"hybrid-auth-service/internal/auth/users"
	"hybrid-auth-service/internal/session"
)

// Resolver reconciles an external identity with the local social
// profile and user records. It is the ONLY place where
// identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(
		ctx context.Context,
		identity *auth.Identity,
		sess *session.Session,
	) (*users.User, error)
}
