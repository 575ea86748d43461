// Package kernel boots the core: it opens the store, brings the schema up to
// date and wires every repository and service onto the single handle.
package kernel

import (
	"context"
	"time"

	"github.com/menumanagerpro/menumanager/app/repositories"
	"github.com/menumanagerpro/menumanager/app/services"
	"github.com/menumanagerpro/menumanager/config"
	_ "github.com/menumanagerpro/menumanager/database/migrations"
	"github.com/menumanagerpro/menumanager/pkg/auth"
	"github.com/menumanagerpro/menumanager/pkg/database"
	"github.com/menumanagerpro/menumanager/pkg/document"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
	"github.com/menumanagerpro/menumanager/pkg/logger"
	"github.com/menumanagerpro/menumanager/pkg/migration"
	"github.com/menumanagerpro/menumanager/pkg/storage"
)

// Options selects the store and the parameters of the services.
type Options struct {
	Driver         string
	DSN            string
	DocumentsRoot  string
	SessionSecret  string
	SessionTTL     time.Duration
	BcryptCost     int
	RestaurantName string

	// SkipMigrations opens the store as-is; the migrate commands use it to
	// drive the runner themselves.
	SkipMigrations bool
}

// OptionsFromConfig reads Options from the config package.
func OptionsFromConfig() Options {
	return Options{
		Driver:         config.DatabaseDriver(),
		DSN:            config.DatabaseDSN(),
		DocumentsRoot:  config.DocumentsRoot(),
		SessionSecret:  config.SessionSecret(),
		SessionTTL:     config.SessionTTL(),
		BcryptCost:     config.BcryptCost(),
		RestaurantName: config.Get("RESTAURANT_NAME", "MenuManager Pro"),
	}
}

// Kernel is the ready handle: the store plus everything built on it.
type Kernel struct {
	Store *database.Store
	Disk  *storage.Local

	Users          *repositories.UserRepository
	Sections       *repositories.SectionRepository
	Dishes         *repositories.DishRepository
	Menus          *repositories.MenuRepository
	MenuHistory    *repositories.MenuHistoryRepository
	PurchaseOrders *repositories.PurchaseOrderRepository

	Auth      *services.AuthService
	Documents *services.DocumentService
}

// Initialize opens the store and applies pending migrations. It is safe to
// call on every start: tables that exist are left alone. An unreachable or
// unwritable store fails with STORAGE_UNAVAILABLE.
func Initialize(ctx context.Context, opts Options) (*Kernel, error) {
	store, err := database.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	if !opts.SkipMigrations {
		n, err := migration.New(store.DB(ctx)).Run(ctx)
		if err != nil {
			_ = store.Close()
			return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "kernel: migrate schema")
		}
		if n > 0 {
			logger.Info("schema migrated", "applied", n)
		}
	}

	disk, err := storage.NewLocal(opts.DocumentsRoot)
	if err != nil {
		_ = store.Close()
		return nil, apperr.Wrap(apperr.CodeStorageUnavailable, err, "kernel: documents root")
	}

	hasher := auth.NewHasher(opts.BcryptCost)
	k := &Kernel{
		Store:          store,
		Disk:           disk,
		Users:          repositories.NewUserRepository(store, hasher),
		Sections:       repositories.NewSectionRepository(store),
		Dishes:         repositories.NewDishRepository(store),
		Menus:          repositories.NewMenuRepository(store),
		MenuHistory:    repositories.NewMenuHistoryRepository(store),
		PurchaseOrders: repositories.NewPurchaseOrderRepository(store),
	}
	k.Auth = services.NewAuthService(k.Users, hasher, auth.NewIssuer(opts.SessionSecret, opts.SessionTTL))
	k.Documents = services.NewDocumentService(k.Menus, k.MenuHistory, k.PurchaseOrders, disk, document.NewRenderer(opts.RestaurantName))

	logger.Debug("kernel ready", "driver", store.Driver())
	return k, nil
}

// Close releases the store handle.
func (k *Kernel) Close() error {
	return k.Store.Close()
}
