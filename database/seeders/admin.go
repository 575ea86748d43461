package seeders

import (
	"errors"

	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/config"
	"github.com/menumanagerpro/menumanager/pkg/auth"
	"github.com/menumanagerpro/menumanager/pkg/logger"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("default_sections", SeedDefaultSections)
}

// SeedAdminUser creates the first administrator from ADMIN_USERNAME and
// ADMIN_PASSWORD when the store has no admin yet. Without a configured
// password it does nothing.
func SeedAdminUser(db *gorm.DB) error {
	password := config.AdminPassword()
	if password == "" {
		logger.Warn("seeder: ADMIN_PASSWORD not set, skipping admin user")
		return nil
	}

	var admins int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins).Error; err != nil {
		return err
	}
	if admins > 0 {
		return nil
	}

	hash, err := auth.NewHasher(config.BcryptCost()).Hash(password)
	if err != nil {
		return err
	}
	return db.Create(&models.User{
		Username: config.AdminUsername(),
		Password: hash,
		Role:     models.RoleAdmin,
	}).Error
}

// DefaultSections are the sections a fresh store starts with.
var DefaultSections = []string{"Entradas", "Platos principales", "Guarniciones", "Postres", "Bebidas"}

// SeedDefaultSections inserts any of DefaultSections that is missing.
func SeedDefaultSections(db *gorm.DB) error {
	for _, name := range DefaultSections {
		var existing models.Section
		err := db.Where("name = ?", name).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&models.Section{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
