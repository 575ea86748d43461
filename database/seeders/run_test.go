package seeders_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/config"
	_ "github.com/menumanagerpro/menumanager/database/migrations"
	"github.com/menumanagerpro/menumanager/database/seeders"
	"github.com/menumanagerpro/menumanager/pkg/database"
	"github.com/menumanagerpro/menumanager/pkg/migration"
)

func newMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()
	store, err := database.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	_, err = migration.New(store.DB(context.Background())).Run(context.Background())
	require.NoError(t, err)
	return store.DB(context.Background())
}

func TestRunAll_SeedsAdminAndSectionsOnce(t *testing.T) {
	config.Set("ADMIN_USERNAME", "boss")
	config.Set("ADMIN_PASSWORD", "s3cret")
	config.Set("BCRYPT_COST", "4")
	t.Cleanup(func() { config.Set("ADMIN_PASSWORD", "") })

	db := newMigratedDB(t)

	ran, err := seeders.RunAll(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin_user", "default_sections"}, ran)

	_, err = seeders.RunAll(db)
	require.NoError(t, err)

	var users []models.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "boss", users[0].Username)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.NotEqual(t, "s3cret", users[0].Password)

	var sections int64
	require.NoError(t, db.Model(&models.Section{}).Count(&sections).Error)
	assert.EqualValues(t, len(seeders.DefaultSections), sections)
}

func TestSeedAdminUser_SkipsWithoutPassword(t *testing.T) {
	config.Set("ADMIN_PASSWORD", "")
	db := newMigratedDB(t)

	require.NoError(t, seeders.SeedAdminUser(db))

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.Zero(t, n)
}
