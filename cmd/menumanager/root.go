package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/config"
	"github.com/menumanagerpro/menumanager/internal/kernel"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "menumanager",
		Short:         "MenuManager: restaurant menu and purchasing CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("token", "", "session token from `login` (default $MENU_TOKEN)")

	// Database
	root.AddCommand(newMigrateCmd(), newMigrateRollbackCmd(), newMigrateStatusCmd(), newSeedCmd())

	// Sessions and users
	root.AddCommand(newLoginCmd())
	root.AddCommand(newUserCmds()...)

	// Catalog
	root.AddCommand(newSectionCmds()...)
	root.AddCommand(newDishCmds()...)

	// Menus and purchasing
	root.AddCommand(newMenuCmds()...)
	root.AddCommand(newOrderCmds()...)

	root.AddCommand(newStatsCmd())
	return root
}

// boot opens the kernel with options from config.
func boot(ctx context.Context) (*kernel.Kernel, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return kernel.Initialize(ctx, kernel.OptionsFromConfig())
}

// withSession boots the kernel, checks the caller's session against roles
// and runs fn. No roles means any signed-in user.
func withSession(cmd *cobra.Command, roles []models.Role, fn func(ctx context.Context, k *kernel.Kernel) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	k, err := boot(ctx)
	if err != nil {
		return err
	}
	defer k.Close()

	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = config.Get("MENU_TOKEN", "")
	}
	if token == "" {
		return apperr.New(apperr.CodeAuthentication, "not signed in: run `menumanager login` and pass --token or set MENU_TOKEN")
	}
	if _, err := k.Auth.Authorize(token, roles...); err != nil {
		return err
	}
	return fn(ctx, k)
}

var (
	anyRole   []models.Role
	adminOnly = []models.Role{models.RoleAdmin}
)
