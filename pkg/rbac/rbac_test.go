package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
)

func TestHasRole(t *testing.T) {
	assert.NoError(t, HasRole("admin", "admin"))
	assert.NoError(t, HasRole("user", "admin", "user"))
	assert.NoError(t, HasRole("user"))

	err := HasRole("user", "admin")
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))

	assert.ErrorIs(t, HasRole(""), ErrForbidden)
}
