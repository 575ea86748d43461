package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCause(t *testing.T) {
	cause := stdErrors.New("disk I/O error")
	err := Wrap(CodeStorage, cause, "list dishes")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeStorage, err.Code())
	assert.Equal(t, "STORAGE: list dishes", err.Error())
}

func TestWithFieldAppearsInMessage(t *testing.T) {
	err := New(CodeDuplicateKey, "user already exists").WithField("username")

	assert.Equal(t, "username", err.Field())
	assert.Equal(t, "DUPLICATE_KEY: user already exists (username)", err.Error())
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := New(CodeNotFound, "menu 4 not found")
	outer := fmt.Errorf("publish: %w", inner)

	assert.True(t, IsCode(outer, CodeNotFound))
	assert.False(t, IsCode(outer, CodeStorage))
	assert.Same(t, inner, As(outer))
	assert.Nil(t, As(nil))
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeAuthentication, "invalid username or password")
	other := New(CodeAuthentication, "invalid username or password")

	assert.ErrorIs(t, other, sentinel)
	assert.NotErrorIs(t, New(CodeStorage, "x"), sentinel)
}

func TestMetadataForUnknownCode(t *testing.T) {
	assert.Equal(t, MetadataFor(CodeStorage), MetadataFor(Code("NOPE")))
	assert.True(t, MetadataFor(CodeDuplicateKey).Recoverable)
}
