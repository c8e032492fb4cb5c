package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Config carries every recognized option with typed fields and
// documented defaults. Load reads the environment, applies defaults
// and validates; nothing downstream re-checks option values.
type Config struct {
	AppPort string // HTTP listen port. Default "8080".
	BaseURL string // absolute base used to resolve redirect targets. Default "http://localhost:8080".

	RequestMethod string        // HTTP verb accepted by the login action. Default POST.
	LoginURL      string        // redirect target on expected auth failures. Default "/users/login".
	LoginRedirect string        // default post-login redirect. Default "/".
	UserEntity    bool          // structured user record instead of a plain mapping. Default false.
	Finder        string        // user lookup strategy: "all" or "active". Default "all".
	PasswordField string        // user field stripped from projections. Default "password".
	SessionKey    string        // session key the user projection is written under. Default "Auth.User".
	SessionTTL    time.Duration // session lifetime. Default 24h.
	LogErrors     bool          // log expected auth failures. Default true.

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	GitHubClientID     string
	GitHubClientSecret string
	GitHubRedirectURL  string

	RedisAddr     string
	RedisPassword string

	DatabaseDSN string
}

func Load() (Config, error) {
	cfg := Config{
		AppPort: getenv("APP_PORT", "8080"),
		BaseURL: getenv("BASE_URL", "http://localhost:8080"),

		RequestMethod: getenv("LOGIN_REQUEST_METHOD", http.MethodPost),
		LoginURL:      getenv("LOGIN_URL", "/users/login"),
		LoginRedirect: getenv("LOGIN_REDIRECT", "/"),
		UserEntity:    getenvBool("USER_ENTITY", false),
		Finder:        getenv("USER_FINDER", "all"),
		PasswordField: getenv("PASSWORD_FIELD", "password"),
		SessionKey:    getenv("SESSION_KEY", "Auth.User"),
		SessionTTL:    getenvDuration("SESSION_TTL", 24*time.Hour),
		LogErrors:     getenvBool("LOG_ERRORS", true),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),

		GitHubClientID:     os.Getenv("GITHUB_CLIENT_ID"),
		GitHubClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
		GitHubRedirectURL:  os.Getenv("GITHUB_REDIRECT_URL"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseDSN: os.Getenv("DATABASE_DSN"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.RequestMethod {
	case http.MethodGet, http.MethodPost:
	default:
		return fmt.Errorf("config: login request method must be GET or POST, got %q", c.RequestMethod)
	}

	switch c.Finder {
	case "all", "active":
	default:
		return fmt.Errorf("config: unknown finder %q", c.Finder)
	}

	base, err := url.Parse(c.BaseURL)
	if err != nil || !base.IsAbs() {
		return fmt.Errorf("config: base url must be absolute, got %q", c.BaseURL)
	}

	if c.LoginURL == "" {
		return fmt.Errorf("config: login url must not be empty")
	}
	if c.SessionKey == "" {
		return fmt.Errorf("config: session key must not be empty")
	}
	if c.PasswordField == "" {
		return fmt.Errorf("config: password field must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: session ttl must be positive")
	}

	return nil
}

// Base returns the parsed base URL. Validate guarantees it parses.
func (c Config) Base() *url.URL {
	base, _ := url.Parse(c.BaseURL)
	return base
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
