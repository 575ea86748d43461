package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/menumanagerpro/menumanager/app/models"
	"github.com/menumanagerpro/menumanager/app/repositories"
	"github.com/menumanagerpro/menumanager/app/requests"
	"github.com/menumanagerpro/menumanager/internal/kernel"
)

// menumanager login
func newLoginCmd() *cobra.Command {
	var req requests.Login
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials and print a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requests.Validate(req); err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			k, err := boot(ctx)
			if err != nil {
				return err
			}
			defer k.Close()

			session, err := k.Auth.Login(ctx, req.Username, req.Password)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signed in as %s (%s) until %s\n", session.Identity.Username, session.Identity.Role, session.ExpiresAt.Format(time.RFC3339))
			fmt.Fprintln(out, session.Token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&req.Username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "password")
	return cmd
}

// menumanager user:create | user:list | user:update | user:delete
func newUserCmds() []*cobra.Command {
	var create requests.CreateUser
	createCmd := &cobra.Command{
		Use:   "user:create",
		Short: "Create a user (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requests.Validate(create); err != nil {
				return err
			}
			return withSession(cmd, adminOnly, func(ctx context.Context, k *kernel.Kernel) error {
				user, err := k.Users.Create(ctx, repositories.NewUser{
					Username: create.Username,
					Password: create.Password,
					Role:     models.Role(create.Role),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s)\n", user.ID, user.Username)
				return nil
			})
		},
	}
	createCmd.Flags().StringVar(&create.Username, "username", "", "username")
	createCmd.Flags().StringVar(&create.Password, "password", "", "password")
	createCmd.Flags().StringVar(&create.Role, "role", string(models.RoleUser), "admin or user")

	listCmd := &cobra.Command{
		Use:   "user:list",
		Short: "List users (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, adminOnly, func(ctx context.Context, k *kernel.Kernel) error {
				users, err := k.Users.List(ctx)
				if err != nil {
					return err
				}
				t := newTable(cmd.OutOrStdout(), "ID", "USERNAME", "ROLE")
				for _, u := range users {
					t.row(id(u.ID), u.Username, string(u.Role))
				}
				return t.flush()
			})
		},
	}

	updateCmd := &cobra.Command{
		Use:   "user:update [id]",
		Short: "Change a user's username, password or role (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			var req requests.UpdateUser
			flags := cmd.Flags()
			if flags.Changed("username") {
				v, _ := flags.GetString("username")
				req.Username = &v
			}
			if flags.Changed("password") {
				v, _ := flags.GetString("password")
				req.Password = &v
			}
			if flags.Changed("role") {
				v, _ := flags.GetString("role")
				req.Role = &v
			}
			if err := requests.Validate(req); err != nil {
				return err
			}

			var patch repositories.UserPatch
			if req.Username != nil {
				patch.Username = repositories.Set(*req.Username)
			}
			if req.Password != nil {
				patch.Password = repositories.Set(*req.Password)
			}
			if req.Role != nil {
				patch.Role = repositories.Set(models.Role(*req.Role))
			}
			return withSession(cmd, adminOnly, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.Users.Update(ctx, userID, patch); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated user %d\n", userID)
				return nil
			})
		},
	}
	updateCmd.Flags().String("username", "", "new username")
	updateCmd.Flags().String("password", "", "new password")
	updateCmd.Flags().String("role", "", "new role: admin or user")

	deleteCmd := &cobra.Command{
		Use:   "user:delete [id]",
		Short: "Delete a user (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, adminOnly, func(ctx context.Context, k *kernel.Kernel) error {
				if err := k.Users.Delete(ctx, userID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", userID)
				return nil
			})
		},
	}

	return []*cobra.Command{createCmd, listCmd, updateCmd, deleteCmd}
}
