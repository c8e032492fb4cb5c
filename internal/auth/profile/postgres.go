package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hybrid-auth-service/internal/db"
)

// Postgres implements Repository over the social_profiles table.
type Postgres struct {
	db *db.DB
}

func NewPostgres(db *db.DB) *Postgres {
	return &Postgres{db: db}
}

const profileColumns = `
	id, provider, identifier, user_id,
	first_name, last_name, full_name, email, email_verified,
	birth_date, gender, picture_url, extra,
	created_at, updated_at`

func (r *Postgres) Find(
	ctx context.Context,
	provider string,
	identifier string,
) (*SocialProfile, error) {

	row := r.db.QueryRowContext(ctx, `
		SELECT`+profileColumns+`
		FROM social_profiles
		WHERE provider = $1
		  AND identifier = $2
	`, provider, identifier)

	var p SocialProfile
	var extra []byte

	err := row.Scan(
		&p.ID, &p.Provider, &p.Identifier, &p.UserID,
		&p.FirstName, &p.LastName, &p.FullName, &p.Email, &p.EmailVerified,
		&p.BirthDate, &p.Gender, &p.PictureURL, &extra,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile: find failed: %w", err)
	}

	if len(extra) > 0 {
		if err := json.Unmarshal(extra, &p.Extra); err != nil {
			return nil, fmt.Errorf("profile: decode extra failed: %w", err)
		}
	}

	p.MarkSaved()
	return &p, nil
}

func (r *Postgres) Save(ctx context.Context, p *SocialProfile) error {
	extra, err := json.Marshal(p.Extra)
	if err != nil {
		return fmt.Errorf("profile: encode extra failed: %w", err)
	}
	if p.Extra == nil {
		extra = []byte(`{}`)
	}

	if p.IsNew() {
		err = r.db.QueryRowContext(ctx, `
			INSERT INTO social_profiles (
				provider, identifier, user_id,
				first_name, last_name, full_name, email, email_verified,
				birth_date, gender, picture_url, extra
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id, created_at, updated_at
		`,
			p.Provider, p.Identifier, p.UserID,
			p.FirstName, p.LastName, p.FullName, p.Email, p.EmailVerified,
			p.BirthDate, p.Gender, p.PictureURL, extra,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	} else {
		_, err = r.db.ExecContext(ctx, `
			UPDATE social_profiles
			SET user_id = $2,
			    first_name = $3, last_name = $4, full_name = $5,
			    email = $6, email_verified = $7,
			    birth_date = $8, gender = $9, picture_url = $10,
			    extra = $11,
			    updated_at = NOW()
			WHERE id = $1
		`,
			p.ID, p.UserID,
			p.FirstName, p.LastName, p.FullName,
			p.Email, p.EmailVerified,
			p.BirthDate, p.Gender, p.PictureURL, extra,
		)
	}

	if err != nil {
		return fmt.Errorf("profile: save failed: %w", err)
	}

	p.MarkSaved()
	return nil
}
