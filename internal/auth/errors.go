package auth

import (
	"errors"

	"golang.org/x/oauth2"
)

// Error codes surfaced to end users via the login-page redirect
// ("<loginUrl>?error=<code>").
const (
	CodeProviderFailure = "provider_failure"
	CodeFinderFailure   = "finder_failure"
)

// Error is an authentication failure with an explicit recoverability
// classification. Recoverable failures are reported to the user by
// redirecting to the login page with the error code; non-recoverable
// ones indicate provider or host misconfiguration and surface as
// server errors.
type Error struct {
	Code        string // short code used in the redirect query string
	Recoverable bool
	Body        string // provider response body, when the failure carries one
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ProviderFailure wraps a recoverable provider error. If the underlying
// error is an OAuth token-endpoint rejection, the provider response body
// is captured for logging.
func ProviderFailure(err error) *Error {
	e := &Error{Code: CodeProviderFailure, Recoverable: true, Err: err}

	var re *oauth2.RetrieveError
	if errors.As(err, &re) {
		e.Body = string(re.Body)
	}

	return e
}

// ProviderFault wraps a non-recoverable provider error (discovery,
// token verification, missing id_token). These indicate configuration
// problems rather than a user-recoverable login failure.
func ProviderFault(err error) *Error {
	return &Error{Code: CodeProviderFailure, Recoverable: false, Err: err}
}

// FinderFailure reports a social profile whose linked user id matches no
// user record under the configured finder.
func FinderFailure(err error) *Error {
	return &Error{Code: CodeFinderFailure, Recoverable: true, Err: err}
}

// IsRecoverable reports whether err is an expected authentication
// failure that should redirect to the login page rather than surface
// as a server error.
func IsRecoverable(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) && e.Recoverable {
		return e, true
	}
	return nil, false
}
