package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menumanagerpro/menumanager/internal/kernel"
	"github.com/menumanagerpro/menumanager/pkg/metrics"
)

// menumanager stats
func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print record counts and this run's operation counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				counts, err := countRecords(ctx, k)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				t := newTable(out, "ENTITY", "RECORDS")
				for _, c := range counts {
					t.row(c.entity, fmt.Sprint(c.n))
				}
				if err := t.flush(); err != nil {
					return err
				}

				lines, err := metrics.Snapshot()
				if err != nil {
					return err
				}
				fmt.Fprintln(out)
				for _, l := range lines {
					fmt.Fprintln(out, l)
				}
				return nil
			})
		},
	}
}

type recordCount struct {
	entity string
	n      int
}

func countRecords(ctx context.Context, k *kernel.Kernel) ([]recordCount, error) {
	users, err := k.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	sections, err := k.Sections.List(ctx)
	if err != nil {
		return nil, err
	}
	dishes, err := k.Dishes.List(ctx)
	if err != nil {
		return nil, err
	}
	menus, err := k.Menus.List(ctx)
	if err != nil {
		return nil, err
	}
	history, err := k.MenuHistory.List(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := k.PurchaseOrders.List(ctx)
	if err != nil {
		return nil, err
	}
	return []recordCount{
		{"users", len(users)},
		{"sections", len(sections)},
		{"dishes", len(dishes)},
		{"menus", len(menus)},
		{"menu_history", len(history)},
		{"purchase_orders", len(orders)},
	}, nil
}
