package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/app/repositories"
	"github.com/menumanagerpro/menumanager/app/requests"
	"github.com/menumanagerpro/menumanager/internal/kernel"
)

func toQuantities(m map[string]string) models.Quantities {
	out := make(models.Quantities, len(m))
	for k, v := range m {
		out[k] = models.Quantity(v)
	}
	return out
}

func formatSelection(sel models.DishSelection) string {
	sections := make([]string, 0, len(sel))
	for s := range sel {
		sections = append(sections, s)
	}
	sort.Strings(sections)
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, s+": "+strings.Join(sel[s], ", "))
	}
	return strings.Join(parts, "; ")
}

// ─── Menus ───────────────────────────────────────────────────────────────────

func newMenuCmds() []*cobra.Command {
	var (
		date     string
		dishes   []string
		toppings []string
	)
	createCmd := &cobra.Command{
		Use:   "menu:create",
		Short: "Compose a menu for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelections(dishes)
			if err != nil {
				return err
			}
			tops, err := parsePairs("topping", toppings)
			if err != nil {
				return err
			}
			req := requests.CreateMenu{Date: date, Dishes: sel, Toppings: tops}
			if err := requests.Validate(req); err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				menu, err := k.Menus.Create(ctx, repositories.NewMenu{
					Date:     req.Date,
					Dishes:   models.DishSelection(req.Dishes),
					Toppings: toQuantities(req.Toppings),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created menu %d for %s\n", menu.ID, menu.Date)
				return nil
			})
		},
	}
	createCmd.Flags().StringVar(&date, "date", "", "menu date (YYYY-MM-DD)")
	createCmd.Flags().StringArrayVar(&dishes, "dish", nil, "dish as Section=Dish (repeatable)")
	createCmd.Flags().StringArrayVar(&toppings, "topping", nil, "topping as name=qty (repeatable)")

	var onDate string
	listCmd := &cobra.Command{
		Use:   "menu:list",
		Short: "List menus",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				var (
					menus []models.Menu
					err   error
				)
				if onDate != "" {
					menus, err = k.Menus.ListByDate(ctx, onDate)
				} else {
					menus, err = k.Menus.List(ctx)
				}
				if err != nil {
					return err
				}
				t := newTable(cmd.OutOrStdout(), "ID", "DATE", "DISHES", "TOPPINGS")
				for _, m := range menus {
					t.row(id(m.ID), m.Date, formatSelection(m.Dishes), formatPairs(m.Toppings))
				}
				return t.flush()
			})
		},
	}
	listCmd.Flags().StringVar(&onDate, "date", "", "only menus for this date")

	updateCmd := &cobra.Command{
		Use:   "menu:update [id]",
		Short: "Change a menu; --dish and --topping replace their whole sets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			menuID, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req requests.UpdateMenu
			flags := cmd.Flags()
			if flags.Changed("date") {
				v, _ := flags.GetString("date")
				req.Date = &v
			}
			if flags.Changed("dish") || flags.Changed("clear-dishes") {
				raw, _ := flags.GetStringArray("dish")
				sel, err := parseSelections(raw)
				if err != nil {
					return err
				}
				req.Dishes = &sel
			}
			if flags.Changed("topping") || flags.Changed("clear-toppings") {
				raw, _ := flags.GetStringArray("topping")
				tops, err := parsePairs("topping", raw)
				if err != nil {
					return err
				}
				req.Toppings = &tops
			}
			if err := requests.Validate(req); err != nil {
				return err
			}

			var patch repositories.MenuPatch
			if req.Date != nil {
				patch.Date = repositories.Set(*req.Date)
			}
			if req.Dishes != nil {
				patch.Dishes = repositories.Set(models.DishSelection(*req.Dishes))
			}
			if req.Toppings != nil {
				patch.Toppings = repositories.Set(toQuantities(*req.Toppings))
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.Menus.Update(ctx, menuID, patch); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated menu %d\n", menuID)
				return nil
			})
		},
	}
	updateCmd.Flags().String("date", "", "new date (YYYY-MM-DD)")
	updateCmd.Flags().StringArray("dish", nil, "replacement dish as Section=Dish (repeatable)")
	updateCmd.Flags().StringArray("topping", nil, "replacement topping as name=qty (repeatable)")
	updateCmd.Flags().Bool("clear-dishes", false, "replace the dishes with an empty set")
	updateCmd.Flags().Bool("clear-toppings", false, "replace the toppings with an empty set")

	deleteCmd := &cobra.Command{
		Use:   "menu:delete [id]",
		Short: "Delete a menu and its publication history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			menuID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.Menus.Delete(ctx, menuID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted menu %d\n", menuID)
				return nil
			})
		},
	}

	publishCmd := &cobra.Command{
		Use:   "menu:publish [id]",
		Short: "Render a menu to PDF and record it in the history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			menuID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				entry, err := k.Documents.PublishMenu(ctx, menuID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Published menu %d: %s\n", menuID, entry.PDFPath)
				return nil
			})
		},
	}

	historyCmd := &cobra.Command{
		Use:   "menu:history [id]",
		Short: "List the documents published for a menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			menuID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				entries, err := k.MenuHistory.ListByMenu(ctx, menuID)
				if err != nil {
					return err
				}
				t := newTable(cmd.OutOrStdout(), "ID", "MENU", "PDF")
				for _, e := range entries {
					t.row(id(e.ID), id(e.MenuID), e.PDFPath)
				}
				return t.flush()
			})
		},
	}

	return []*cobra.Command{createCmd, listCmd, updateCmd, deleteCmd, publishCmd, historyCmd}
}

// ─── Purchase orders ─────────────────────────────────────────────────────────

func newOrderCmds() []*cobra.Command {
	var (
		date        string
		ingredients []string
	)
	issueCmd := &cobra.Command{
		Use:   "order:issue",
		Short: "Render a purchase order to PDF and record it",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := parsePairs("ingredient", ingredients)
			if err != nil {
				return err
			}
			req := requests.IssuePurchaseOrder{Date: date, Ingredients: rows}
			if err := requests.Validate(req); err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				order, err := k.Documents.IssuePurchaseOrder(ctx, req.Date, toQuantities(req.Ingredients))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Issued purchase order %d: %s\n", order.ID, order.PDFPath)
				return nil
			})
		},
	}
	issueCmd.Flags().StringVar(&date, "date", "", "order date (YYYY-MM-DD)")
	issueCmd.Flags().StringArrayVar(&ingredients, "ingredient", nil, "ingredient as name=qty (repeatable)")

	listCmd := &cobra.Command{
		Use:   "order:list",
		Short: "List purchase orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				orders, err := k.PurchaseOrders.List(ctx)
				if err != nil {
					return err
				}
				t := newTable(cmd.OutOrStdout(), "ID", "DATE", "INGREDIENTS", "PDF")
				for _, o := range orders {
					t.row(id(o.ID), o.Date, formatPairs(o.Ingredients), o.PDFPath)
				}
				return t.flush()
			})
		},
	}

	updateCmd := &cobra.Command{
		Use:   "order:update [id]",
		Short: "Change a purchase order's date or ingredients",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req requests.UpdatePurchaseOrder
			flags := cmd.Flags()
			if flags.Changed("date") {
				v, _ := flags.GetString("date")
				req.Date = &v
			}
			if flags.Changed("ingredient") {
				raw, _ := flags.GetStringArray("ingredient")
				rows, err := parsePairs("ingredient", raw)
				if err != nil {
					return err
				}
				req.Ingredients = &rows
			}
			if err := requests.Validate(req); err != nil {
				return err
			}

			var patch repositories.PurchaseOrderPatch
			if req.Date != nil {
				patch.Date = repositories.Set(*req.Date)
			}
			if req.Ingredients != nil {
				patch.Ingredients = repositories.Set(toQuantities(*req.Ingredients))
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.PurchaseOrders.Update(ctx, orderID, patch); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated purchase order %d\n", orderID)
				return nil
			})
		},
	}
	updateCmd.Flags().String("date", "", "new date (YYYY-MM-DD)")
	updateCmd.Flags().StringArray("ingredient", nil, "replacement ingredient as name=qty (repeatable)")

	deleteCmd := &cobra.Command{
		Use:   "order:delete [id]",
		Short: "Delete a purchase order record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			orderID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.PurchaseOrders.Delete(ctx, orderID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted purchase order %d\n", orderID)
				return nil
			})
		},
	}

	return []*cobra.Command{issueCmd, listCmd, updateCmd, deleteCmd}
}
