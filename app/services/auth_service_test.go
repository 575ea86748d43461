package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/app/repositories"
	"github.com/menumanagerpro/menumanager/app/services"
	"github.com/menumanagerpro/menumanager/pkg/auth"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
	"github.com/menumanagerpro/menumanager/pkg/metrics"
)

func newAuth(t *testing.T) (*services.AuthService, *repositories.UserRepository, func() error) {
	t.Helper()
	store := newStore(t)
	users := newUsers(store)
	return services.NewAuthService(users, testHasher(), testIssuer()), users, store.Close
}

func TestVerify_Alice(t *testing.T) {
	svc, users, _ := newAuth(t)
	ctx := context.Background()

	_, err := users.Create(ctx, repositories.NewUser{Username: "alice", Password: "correct", Role: models.RoleUser})
	require.NoError(t, err)

	id, err := svc.Verify(ctx, "alice", "correct")
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)
	assert.Equal(t, models.RoleUser, id.Role)
	assert.NotZero(t, id.ID)

	id, err = svc.Verify(ctx, "alice", "wrong")
	assert.Nil(t, id)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	id, err = svc.Verify(ctx, "bob", "correct")
	assert.Nil(t, id)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestVerify_UsernameIsExact(t *testing.T) {
	svc, users, _ := newAuth(t)
	ctx := context.Background()

	_, err := users.Create(ctx, repositories.NewUser{Username: "alice", Password: "pw", Role: models.RoleUser})
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "alice' OR '1'='1", "pw")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	_, err = svc.Verify(ctx, "ALICE", "pw")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestVerify_StorageFailureIsDistinct(t *testing.T) {
	svc, _, closeStore := newAuth(t)
	require.NoError(t, closeStore())

	_, err := svc.Verify(context.Background(), "alice", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	assert.True(t, apperr.IsCode(err, apperr.CodeStorage), "got %v", err)
}

func TestVerify_RecordsAttempts(t *testing.T) {
	svc, _, _ := newAuth(t)
	failed := metrics.AuthAttempts.WithLabelValues("authentication")
	before := testutil.ToFloat64(failed)

	_, _ = svc.Verify(context.Background(), "nobody", "pw")

	assert.Equal(t, before+1, testutil.ToFloat64(failed))
}

func TestLoginAndAuthorize(t *testing.T) {
	svc, users, _ := newAuth(t)
	ctx := context.Background()

	_, err := users.Create(ctx, repositories.NewUser{Username: "root", Password: "pw", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = users.Create(ctx, repositories.NewUser{Username: "cook", Password: "pw", Role: models.RoleUser})
	require.NoError(t, err)

	admin, err := svc.Login(ctx, "root", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, admin.Token)
	assert.True(t, admin.ExpiresAt.After(time.Now()))

	id, err := svc.Authorize(admin.Token, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "root", id.Username)

	cook, err := svc.Login(ctx, "cook", "pw")
	require.NoError(t, err)
	_, err = svc.Authorize(cook.Token, models.RoleAdmin)
	assert.True(t, apperr.IsCode(err, apperr.CodeForbidden))
	_, err = svc.Authorize(cook.Token)
	assert.NoError(t, err)

	_, err = svc.Login(ctx, "cook", "nope")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthorize_RejectsBadTokens(t *testing.T) {
	svc, _, _ := newAuth(t)

	_, err := svc.Authorize("")
	assert.True(t, apperr.IsCode(err, apperr.CodeAuthentication))

	_, err = svc.Authorize("not-a-token")
	assert.True(t, apperr.IsCode(err, apperr.CodeAuthentication))

	expired, _, err := auth.NewIssuer("test-secret", -time.Minute).Issue(1, "root", "admin")
	require.NoError(t, err)
	_, err = svc.Authorize(expired)
	assert.True(t, apperr.IsCode(err, apperr.CodeAuthentication))

	foreign, _, err := auth.NewIssuer("other-secret", time.Hour).Issue(1, "root", "admin")
	require.NoError(t, err)
	_, err = svc.Authorize(foreign)
	assert.True(t, apperr.IsCode(err, apperr.CodeAuthentication))
}

func TestHashIsSaltedAndVerifiable(t *testing.T) {
	svc, _, _ := newAuth(t)
	h := testHasher()

	a, err := svc.Hash("pw")
	require.NoError(t, err)
	b, err := svc.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	ok, err := h.Compare(a, "pw")
	require.NoError(t, err)
	assert.True(t, ok)
}
