package migrations

import (
	"gorm.io/gorm"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/pkg/migration"
)

func init() {
	migration.Register("20241101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20241101000001_create_sections_table", &CreateSectionsTable{})
	migration.Register("20241101000002_create_dishes_table", &CreateDishesTable{})
	migration.Register("20241101000003_create_menus_table", &CreateMenusTable{})
	migration.Register("20241101000004_create_menu_history_table", &CreateMenuHistoryTable{})
	migration.Register("20241101000005_create_purchase_orders_table", &CreatePurchaseOrdersTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: sections --------

type CreateSectionsTable struct{}

func (m *CreateSectionsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Section{})
}

func (m *CreateSectionsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("sections")
}

// -------- 0003: dishes (section_id → sections.id) --------

type CreateDishesTable struct{}

func (m *CreateDishesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Dish{})
}

func (m *CreateDishesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("dishes")
}

// -------- 0004: menus --------

type CreateMenusTable struct{}

func (m *CreateMenusTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Menu{})
}

func (m *CreateMenusTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("menus")
}

// -------- 0005: menu_history (menu_id → menus.id) --------

type CreateMenuHistoryTable struct{}

func (m *CreateMenuHistoryTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.MenuHistory{})
}

func (m *CreateMenuHistoryTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("menu_history")
}

// -------- 0006: purchase_orders --------

type CreatePurchaseOrdersTable struct{}

func (m *CreatePurchaseOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.PurchaseOrder{})
}

func (m *CreatePurchaseOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("purchase_orders")
}
