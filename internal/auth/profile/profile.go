package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SocialProfile links an external identity to a local user. At most one
// record exists per (provider, identifier) pair; it is created on the
// first successful authentication and patched with the latest provider
// snapshot on every subsequent one.
type SocialProfile struct {
	ID            uuid.UUID      `json:"id"`
	Provider      string         `json:"provider"`
	Identifier    string         `json:"identifier"`
	UserID        uuid.NullUUID  `json:"user_id"`
	FirstName     string         `json:"first_name"`
	LastName      string         `json:"last_name"`
	FullName      string         `json:"full_name"`
	Email         string         `json:"email"`
	EmailVerified bool           `json:"email_verified"`
	BirthDate     string         `json:"birth_date"`
	Gender        string         `json:"gender"`
	PictureURL    string         `json:"picture_url"`
	Extra         map[string]any `json:"extra,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	isNew bool
	dirty bool
}

// Repository stores social profiles. Find returns (nil, nil) when no
// record matches.
type Repository interface {
	Find(ctx context.Context, provider, identifier string) (*SocialProfile, error)
	Save(ctx context.Context, p *SocialProfile) error
}

// New returns an unsaved profile for the given provider.
func New(provider string) *SocialProfile {
	return &SocialProfile{
		Provider: provider,
		isNew:    true,
	}
}

// IsNew reports whether the profile has never been saved.
func (p *SocialProfile) IsNew() bool { return p.isNew }

// Dirty reports whether the profile changed since it was loaded or saved.
func (p *SocialProfile) Dirty() bool { return p.dirty }

// MarkSaved clears the new and dirty flags. Repositories call it after
// a successful load or save.
func (p *SocialProfile) MarkSaved() {
	p.isNew = false
	p.dirty = false
}

// LinkUser sets the linked user id.
func (p *SocialProfile) LinkUser(id uuid.UUID) {
	if p.UserID.Valid && p.UserID.UUID == id {
		return
	}
	p.UserID = uuid.NullUUID{UUID: id, Valid: true}
	p.dirty = true
}

// Patch overwrites the profile with the mapped attributes of the latest
// provider snapshot. Attributes with dedicated columns land there;
// everything else goes into Extra. The dirty flag is set only when a
// value actually changed.
func (p *SocialProfile) Patch(attrs map[string]any) {
	for key, value := range attrs {
		switch key {
		case "identifier":
			p.setString(&p.Identifier, stringify(value))
		case "first_name":
			p.setString(&p.FirstName, stringify(value))
		case "last_name":
			p.setString(&p.LastName, stringify(value))
		case "full_name":
			p.setString(&p.FullName, stringify(value))
		case "email":
			p.setString(&p.Email, stringify(value))
		case "birth_date":
			p.setString(&p.BirthDate, stringify(value))
		case "gender":
			p.setString(&p.Gender, stringify(value))
		case "picture_url":
			p.setString(&p.PictureURL, stringify(value))
		case "email_verified":
			verified, _ := value.(bool)
			if p.EmailVerified != verified {
				p.EmailVerified = verified
				p.dirty = true
			}
		default:
			p.setExtra(key, value)
		}
	}
}

func (p *SocialProfile) setString(dst *string, value string) {
	if *dst != value {
		*dst = value
		p.dirty = true
	}
}

func (p *SocialProfile) setExtra(key string, value any) {
	if p.Extra == nil {
		p.Extra = make(map[string]any)
	}
	// Dirty-check scalars only; composite values are always rewritten.
	switch value.(type) {
	case nil, string, bool, int, int64, float64:
		if existing, ok := p.Extra[key]; ok && existing == value {
			return
		}
	}
	p.Extra[key] = value
	p.dirty = true
}

// stringify renders scalar attribute values as stored text. Providers
// report identifiers as strings or numbers depending on their API.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
