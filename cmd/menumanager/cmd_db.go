package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menumanagerpro/menumanager/config"
	_ "github.com/menumanagerpro/menumanager/database/migrations"
	"github.com/menumanagerpro/menumanager/database/seeders"
	"github.com/menumanagerpro/menumanager/pkg/database"
	"github.com/menumanagerpro/menumanager/pkg/migration"
)

// openStore loads config and opens the store without migrating it.
func openStore() (*database.Store, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Open(config.DatabaseDriver(), config.DatabaseDSN())
}

func runWithStore(cmd *cobra.Command, fn func(ctx context.Context, store *database.Store) error) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return fn(ctx, store)
}

// menumanager migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run all pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(cmd, func(ctx context.Context, store *database.Store) error {
				n, err := migration.New(store.DB(ctx)).Run(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s)\n", n)
				return nil
			})
		},
	}
}

// menumanager migrate:rollback
func newMigrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Rollback the last batch of migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(cmd, func(ctx context.Context, store *database.Store) error {
				n, err := migration.New(store.DB(ctx)).Rollback(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rolled back %d migration(s)\n", n)
				return nil
			})
		},
	}
}

// menumanager migrate:status
func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show the status of each migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(cmd, func(ctx context.Context, store *database.Store) error {
				statuses, err := migration.New(store.DB(ctx)).Status(ctx)
				if err != nil {
					return err
				}
				w := newTable(cmd.OutOrStdout(), "MIGRATION", "RAN", "BATCH")
				for _, s := range statuses {
					batch := "-"
					if s.Ran {
						batch = fmt.Sprint(s.Batch)
					}
					w.row(s.Name, yesNo(s.Ran), batch)
				}
				return w.flush()
			})
		},
	}
}

// menumanager seed
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Run all database seeders (admin user, default sections)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			k, err := boot(ctx)
			if err != nil {
				return err
			}
			defer k.Close()

			ran, err := seeders.RunAll(k.Store.DB(ctx))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Ran %d seeder(s)\n", len(ran))
			return nil
		},
	}
}
