// Package github implements OAuth 2.0 authentication with GitHub.
// Unlike Google, GitHub issues no ID token, so the user profile is
// fetched from the REST API after the code exchange.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"hybrid-auth-service/internal/auth"

	"golang.org/x/oauth2"
	githubendpoint "golang.org/x/oauth2/github"
)

const (
	providerName  = "github"
	userEndpoint  = "https://api.github.com/user"
	emailEndpoint = "https://api.github.com/user/emails"
)

type Provider struct {
	oauthConfig *oauth2.Config
	http        *http.Client
}

func New(
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("github oauth config missing required fields")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     githubendpoint.Endpoint,
		Scopes:       []string{"read:user", "user:email"},
	}

	return &Provider{
		oauthConfig: oauthCfg,
		http:        &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the OAuth authorization URL. GitHub ignores the
// PKCE parameters but accepting them keeps the provider contract uniform.
func (p *Provider) AuthCodeURL(state string, codeChallenge string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// userInfo is the subset of the GitHub user API response we map into
// the identity.
type userInfo struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
	Bio       string `json:"bio"`
	Location  string `json:"location"`
	Company   string `json:"company"`
}

type emailInfo struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	codeVerifier string,
) (*auth.Identity, error) {

	token, err := p.oauthConfig.Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return nil, auth.ProviderFailure(fmt.Errorf("github token exchange failed: %w", err))
	}

	info, err := p.fetchUser(ctx, token.AccessToken)
	if err != nil {
		return nil, auth.ProviderFault(fmt.Errorf("github user fetch failed: %w", err))
	}

	email := info.Email
	emailVerified := false

	// The user API omits private emails; the emails API lists them with
	// verification status.
	if primary, err := p.fetchPrimaryEmail(ctx, token.AccessToken); err == nil && primary != nil {
		if email == "" {
			email = primary.Email
		}
		emailVerified = primary.Verified
	}

	raw := map[string]any{
		"id":            info.ID,
		"emailVerified": emailVerified,
		"login":         info.Login,
	}
	if email != "" {
		raw["email"] = email
	}
	if info.Name != "" {
		raw["fullname"] = info.Name
	}
	if info.AvatarURL != "" {
		raw["pictureURL"] = info.AvatarURL
	}
	if info.HTMLURL != "" {
		raw["profileURL"] = info.HTMLURL
	}
	if info.Bio != "" {
		raw["description"] = info.Bio
	}
	if info.Location != "" {
		raw["region"] = info.Location
	}
	if info.Company != "" {
		raw["company"] = info.Company
	}

	return &auth.Identity{
		Provider:       providerName,
		ProviderUserID: strconv.FormatInt(info.ID, 10),
		Email:          email,
		EmailVerified:  emailVerified,
		Raw:            raw,
	}, nil
}

func (p *Provider) fetchUser(ctx context.Context, accessToken string) (*userInfo, error) {
	var info userInfo
	if err := p.apiGet(ctx, userEndpoint, accessToken, &info); err != nil {
		return nil, err
	}
	if info.ID == 0 {
		return nil, errors.New("github user response missing id")
	}
	return &info, nil
}

// fetchPrimaryEmail returns the primary verified email, falling back to
// any verified one, then any at all.
func (p *Provider) fetchPrimaryEmail(ctx context.Context, accessToken string) (*emailInfo, error) {
	var emails []emailInfo
	if err := p.apiGet(ctx, emailEndpoint, accessToken, &emails); err != nil {
		return nil, err
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return &e, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return &e, nil
		}
	}
	if len(emails) > 0 {
		return &emails[0], nil
	}

	return nil, errors.New("no email found")
}

func (p *Provider) apiGet(ctx context.Context, endpoint, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github api error: status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
