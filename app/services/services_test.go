package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/menumanagerpro/menumanager/app/repositories"
	_ "github.com/menumanagerpro/menumanager/database/migrations"
	"github.com/menumanagerpro/menumanager/pkg/auth"
	"github.com/menumanagerpro/menumanager/pkg/database"
	"github.com/menumanagerpro/menumanager/pkg/migration"
)

func newStore(t *testing.T) *database.Store {
	t.Helper()
	store, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = migration.New(store.DB(context.Background())).Run(context.Background())
	require.NoError(t, err)
	return store
}

func testHasher() *auth.Hasher { return auth.NewHasher(bcrypt.MinCost) }

func testIssuer() *auth.Issuer { return auth.NewIssuer("test-secret", time.Hour) }

func newUsers(store *database.Store) *repositories.UserRepository {
	return repositories.NewUserRepository(store, testHasher())
}
