package resolver

import (
	"context"
	"errors"
	"fmt"

	"hybrid-auth-service/internal/auth"
	"hybrid-auth-service/internal/auth/profile"
	"hybrid-auth-service/internal/auth/users"
	"hybrid-auth-service/internal/session"
)

// DBResolver is the canonical reconciliation workflow: find or create
// the social profile for the identity, resolve the linked user (or ask
// the get-user callback for one), persist the profile when it changed,
// and return the user with the profile attached.
type DBResolver struct {
	profiles profile.Repository
	users    users.Finder
	getUser  users.GetUserFunc
}

func NewDBResolver(
	profiles profile.Repository,
	finder users.Finder,
	getUser users.GetUserFunc,
) *DBResolver {
	return &DBResolver{
		profiles: profiles,
		users:    finder,
		getUser:  getUser,
	}
}

func (r *DBResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
	sess *session.Session,
) (*users.User, error) {

	if identity == nil {
		return nil, errors.New("resolver: identity is nil")
	}

	// 1. Find or create the profile for (provider, identifier), then
	// patch it with the newest provider snapshot.
	p, err := r.profiles.Find(ctx, identity.Provider, identity.ProviderUserID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = profile.New(identity.Provider)
	}
	p.Patch(profile.MapAttributes(identity.Raw))

	// 2. Resolve the user. A linked user id goes through the configured
	// finder; a finder miss is an expected failure and must not fall
	// through to the callback. An unlinked profile asks the callback.
	var u *users.User
	if p.UserID.Valid {
		u, err = r.users.FindByID(ctx, p.UserID.UUID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, auth.FinderFailure(
				fmt.Errorf("no user %s for profile %s/%s",
					p.UserID.UUID, p.Provider, p.Identifier),
			)
		}
	} else {
		u, err = r.getUser(ctx, p, sess)
		if err != nil {
			return nil, fmt.Errorf("resolver: get-user callback failed: %w", err)
		}
		if u == nil {
			return nil, errors.New("resolver: get-user callback must return a user record")
		}
		p.LinkUser(u.ID)
	}

	// 3. Persist the profile when created or modified. A save failure
	// is a fatal error, not a login failure.
	if p.IsNew() || p.Dirty() {
		if err := r.profiles.Save(ctx, p); err != nil {
			return nil, fmt.Errorf("resolver: unable to save social profile: %w", err)
		}
	}

	u.SocialProfile = p
	return u, nil
}
