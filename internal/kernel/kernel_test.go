package kernel

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/app/repositories"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
)

func testOptions(t *testing.T, dsn string) Options {
	return Options{
		Driver:         "sqlite",
		DSN:            dsn,
		DocumentsRoot:  t.TempDir(),
		SessionSecret:  "test",
		SessionTTL:     time.Hour,
		BcryptCost:     4,
		RestaurantName: "Casa Test",
	}
}

func TestInitialize_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	opts := testOptions(t, filepath.Join(t.TempDir(), "app.db"))

	k, err := Initialize(ctx, opts)
	require.NoError(t, err)
	_, err = k.Sections.Create(ctx, "Entradas")
	require.NoError(t, err)
	require.NoError(t, k.Close())

	k, err = Initialize(ctx, opts)
	require.NoError(t, err)
	defer k.Close()

	sections, err := k.Sections.List(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "Entradas", sections[0].Name)
}

func TestInitialize_UnwritableLocation(t *testing.T) {
	opts := testOptions(t, filepath.Join(t.TempDir(), "missing", "dir", "app.db"))

	_, err := Initialize(context.Background(), opts)
	assert.True(t, apperr.IsCode(err, apperr.CodeStorageUnavailable), "got %v", err)
}

func TestInitialize_WiresServices(t *testing.T) {
	ctx := context.Background()
	k, err := Initialize(ctx, testOptions(t, ":memory:"))
	require.NoError(t, err)
	defer k.Close()

	_, err = k.Users.Create(ctx, repositories.NewUser{Username: "alice", Password: "correct", Role: models.RoleUser})
	require.NoError(t, err)

	session, err := k.Auth.Login(ctx, "alice", "correct")
	require.NoError(t, err)
	id, err := k.Auth.Authorize(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", id.Username)

	order, err := k.Documents.IssuePurchaseOrder(ctx, "2024-11-04", models.Quantities{"papa": "1kg"})
	require.NoError(t, err)
	assert.FileExists(t, order.PDFPath)
}
