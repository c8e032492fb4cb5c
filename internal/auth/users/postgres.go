package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hybrid-auth-service/internal/auth/profile"
	"hybrid-auth-service/internal/db"
	"hybrid-auth-service/internal/session"

	"github.com/google/uuid"
)

// Finder strategies. "all" matches any user; "active" additionally
// requires status = 'active'.
const (
	FinderAll    = "all"
	FinderActive = "active"
)

// Postgres implements Finder over the users table.
type Postgres struct {
	db     *db.DB
	finder string
}

func NewPostgres(database *db.DB, finder string) (*Postgres, error) {
	switch finder {
	case FinderAll, FinderActive:
	default:
		return nil, fmt.Errorf("users: unknown finder %q", finder)
	}
	return &Postgres{db: database, finder: finder}, nil
}

const userColumns = `
	id, email, email_verified, name, password, status, created_at, updated_at`

func (r *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users
		WHERE id = $1
	`
	if r.finder == FinderActive {
		query += ` AND status = 'active'`
	}

	return r.scan(r.db.QueryRowContext(ctx, query, id))
}

// FindByEmail looks a user up by email, case-insensitively.
func (r *Postgres) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT`+userColumns+`
		FROM users
		WHERE LOWER(email) = LOWER($1)
	`, email))
}

// Create inserts a new user record.
func (r *Postgres) Create(ctx context.Context, u *User) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (email, email_verified, name)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`, u.Email, u.EmailVerified, u.Name).
		Scan(&u.ID, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("users: create failed: %w", err)
	}
	return nil
}

func (r *Postgres) scan(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID, &u.Email, &u.EmailVerified, &u.Name,
		&u.Password, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find failed: %w", err)
	}
	return &u, nil
}

// DefaultGetUser returns the get-user callback used when the host
// application supplies none: link the profile to an existing user with
// the same email, or create a fresh user from the profile fields.
func DefaultGetUser(store *Postgres) GetUserFunc {
	return func(ctx context.Context, p *profile.SocialProfile, _ *session.Session) (*User, error) {
		if p.Email == "" {
			return nil, errors.New("users: social profile has no email to match on")
		}

		u, err := store.FindByEmail(ctx, p.Email)
		if err != nil {
			return nil, err
		}
		if u != nil {
			return u, nil
		}

		u = &User{
			Email:         p.Email,
			EmailVerified: p.EmailVerified,
			Name:          p.FullName,
		}
		if err := store.Create(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}
}
