package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/app/repositories"
	"github.com/menumanagerpro/menumanager/app/requests"
	"github.com/menumanagerpro/menumanager/internal/kernel"
	apperr "github.com/menumanagerpro/menumanager/pkg/errors"
)

// ─── Sections ────────────────────────────────────────────────────────────────

func newSectionCmds() []*cobra.Command {
	createCmd := &cobra.Command{
		Use:   "section:create [name]",
		Short: "Create a menu section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := requests.CreateSection{Name: strings.TrimSpace(args[0])}
			if err := requests.Validate(req); err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				section, err := k.Sections.Create(ctx, req.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created section %d (%s)\n", section.ID, section.Name)
				return nil
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "section:list",
		Short: "List sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				sections, err := k.Sections.List(ctx)
				if err != nil {
					return err
				}
				t := newTable(cmd.OutOrStdout(), "ID", "NAME")
				for _, s := range sections {
					t.row(id(s.ID), s.Name)
				}
				return t.flush()
			})
		},
	}

	updateCmd := &cobra.Command{
		Use:   "section:update [id]",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sectionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req requests.UpdateSection
			if cmd.Flags().Changed("name") {
				v, _ := cmd.Flags().GetString("name")
				req.Name = &v
			}
			if err := requests.Validate(req); err != nil {
				return err
			}
			var patch repositories.SectionPatch
			if req.Name != nil {
				patch.Name = repositories.Set(*req.Name)
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.Sections.Update(ctx, sectionID, patch); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated section %d\n", sectionID)
				return nil
			})
		},
	}
	updateCmd.Flags().String("name", "", "new name")

	deleteCmd := &cobra.Command{
		Use:   "section:delete [id]",
		Short: "Delete a section that no dish uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sectionID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.Sections.Delete(ctx, sectionID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted section %d\n", sectionID)
				return nil
			})
		},
	}

	return []*cobra.Command{createCmd, listCmd, updateCmd, deleteCmd}
}

// ─── Dishes ──────────────────────────────────────────────────────────────────

// parseIngredients reads repeated "name=qty" flags in order.
func parseIngredients(pairs []string) ([]requests.Ingredient, error) {
	out := make([]requests.Ingredient, 0, len(pairs))
	for _, p := range pairs {
		name, qty, ok := strings.Cut(p, "=")
		if !ok {
			return nil, apperr.New(apperr.CodeValidation, fmt.Sprintf("--ingredient wants name=qty, got %q", p)).WithField("ingredient")
		}
		out = append(out, requests.Ingredient{Name: strings.TrimSpace(name), Qty: strings.TrimSpace(qty)})
	}
	return out, nil
}

func toIngredientList(in []requests.Ingredient) models.IngredientList {
	out := make(models.IngredientList, 0, len(in))
	for _, i := range in {
		out = append(out, models.Ingredient{Name: i.Name, Qty: models.Quantity(i.Qty)})
	}
	return out
}

func formatIngredients(list models.IngredientList) string {
	parts := make([]string, 0, len(list))
	for _, i := range list {
		parts = append(parts, i.Name+"="+string(i.Qty))
	}
	return strings.Join(parts, ", ")
}

func newDishCmds() []*cobra.Command {
	var (
		create      requests.CreateDish
		ingredients []string
	)
	createCmd := &cobra.Command{
		Use:   "dish:create",
		Short: "Create a dish in a section",
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := parseIngredients(ingredients)
			if err != nil {
				return err
			}
			create.Ingredients = list
			if err := requests.Validate(create); err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				dish, err := k.Dishes.Create(ctx, repositories.NewDish{
					Name:        create.Name,
					SectionID:   create.SectionID,
					Ingredients: toIngredientList(create.Ingredients),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created dish %d (%s)\n", dish.ID, dish.Name)
				return nil
			})
		},
	}
	createCmd.Flags().StringVar(&create.Name, "name", "", "dish name")
	createCmd.Flags().UintVar(&create.SectionID, "section", 0, "section id")
	createCmd.Flags().StringArrayVar(&ingredients, "ingredient", nil, "ingredient as name=qty (repeatable)")

	var bySection uint
	listCmd := &cobra.Command{
		Use:   "dish:list",
		Short: "List dishes with their section",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				var (
					dishes []repositories.DishRecord
					err    error
				)
				if bySection > 0 {
					dishes, err = k.Dishes.ListBySection(ctx, bySection)
				} else {
					dishes, err = k.Dishes.List(ctx)
				}
				if err != nil {
					return err
				}
				t := newTable(cmd.OutOrStdout(), "ID", "NAME", "SECTION", "INGREDIENTS")
				for _, d := range dishes {
					t.row(id(d.ID), d.Name, d.Section, formatIngredients(d.Ingredients))
				}
				return t.flush()
			})
		},
	}
	listCmd.Flags().UintVar(&bySection, "section", 0, "only dishes of this section id")

	updateCmd := &cobra.Command{
		Use:   "dish:update [id]",
		Short: "Change a dish; --ingredient replaces the whole list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dishID, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req requests.UpdateDish
			flags := cmd.Flags()
			if flags.Changed("name") {
				v, _ := flags.GetString("name")
				req.Name = &v
			}
			if flags.Changed("section") {
				v, _ := flags.GetUint("section")
				req.SectionID = &v
			}
			if flags.Changed("ingredient") || flags.Changed("clear-ingredients") {
				raw, _ := flags.GetStringArray("ingredient")
				list, err := parseIngredients(raw)
				if err != nil {
					return err
				}
				req.Ingredients = &list
			}
			if err := requests.Validate(req); err != nil {
				return err
			}

			var patch repositories.DishPatch
			if req.Name != nil {
				patch.Name = repositories.Set(*req.Name)
			}
			if req.SectionID != nil {
				patch.SectionID = repositories.Set(*req.SectionID)
			}
			if req.Ingredients != nil {
				patch.Ingredients = repositories.Set(toIngredientList(*req.Ingredients))
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.Dishes.Update(ctx, dishID, patch); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated dish %d\n", dishID)
				return nil
			})
		},
	}
	updateCmd.Flags().String("name", "", "new name")
	updateCmd.Flags().Uint("section", 0, "new section id")
	updateCmd.Flags().StringArray("ingredient", nil, "replacement ingredient as name=qty (repeatable)")
	updateCmd.Flags().Bool("clear-ingredients", false, "replace the ingredient list with an empty one")

	deleteCmd := &cobra.Command{
		Use:   "dish:delete [id]",
		Short: "Delete a dish",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dishID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, anyRole, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.Dishes.Delete(ctx, dishID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted dish %d\n", dishID)
				return nil
			})
		},
	}

	return []*cobra.Command{createCmd, listCmd, updateCmd, deleteCmd}
}
