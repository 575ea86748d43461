package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHash_SaltsEveryCall(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("correct horse")
	require.NoError(t, err)
	second, err := h.Hash("correct horse")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "correct horse")

	for _, hash := range []string{first, second} {
		ok, err := h.Compare(hash, "correct horse")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestCompare_Mismatch(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("right")
	require.NoError(t, err)

	ok, err := h.Compare(hash, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompare_MalformedHash(t *testing.T) {
	ok, err := NewHasher(bcrypt.MinCost).Compare("not-a-hash", "x")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewHasher(1).cost)
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).cost)
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	token, expires, err := issuer.Issue(7, "alice", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := issuer.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestIssuer_RejectsExpired(t *testing.T) {
	issuer := NewIssuer("secret", time.Minute)
	issued := time.Now().Add(-time.Hour)
	issuer.now = func() time.Time { return issued }

	token, _, err := issuer.Issue(1, "bob", "user")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestIssuer_RejectsForeignSecret(t *testing.T) {
	token, _, err := NewIssuer("one", time.Hour).Issue(1, "bob", "user")
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Validate(token)
	assert.Error(t, err)
}
