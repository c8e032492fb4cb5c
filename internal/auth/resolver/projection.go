package resolver

import "hybrid-auth-service/internal/auth/users"

// Project converts the resolved user into its outward shape: the
// structured record or a plain mapping, per configuration. Either way
// the configured password field never survives.
func Project(u *users.User, entity bool, passwordField string) any {
	if entity {
		out := *u
		out.Password = ""
		return &out
	}

	m := u.AsMap(passwordField)
	delete(m, passwordField)
	return m
}
