// Package rbac checks a signed-in session's role against what an operation allows.
package rbac

import (
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
)

// ErrForbidden is returned when the session's role is not allowed.
var ErrForbidden = apperr.New(apperr.CodeForbidden, "role not allowed for this operation")

// HasRole returns nil when role is one of roles, ErrForbidden otherwise.
// With no roles given any non-empty role passes.
func HasRole(role string, roles ...string) error {
	if role == "" {
		return ErrForbidden
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return ErrForbidden
}
