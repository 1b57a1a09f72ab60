package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"newsdesk/internal/auth"
	"newsdesk/internal/core"
	"newsdesk/internal/server"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserCreateCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		name     string
		email    string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := core.Validate(auth.RegisterInput{Name: name, Email: email, Password: password}); err != nil {
				return err
			}

			config := core.ConfigFromEnv()
			config.Features.Uploads.Enabled = false
			config.Auth.AdminEmail = ""
			if config.Auth.JWTSecret == "" {
				config.Auth.JWTSecret = "unused"
			}
			if err := config.Validate(); err != nil {
				return err
			}

			srv, err := server.New(config, core.NewDiscardLogger())
			if err != nil {
				return err
			}
			defer srv.Shutdown(cmd.Context())

			if err := srv.Init(cmd.Context()); err != nil {
				return err
			}

			user, err := srv.Auth().CreateUser(cmd.Context(), name, email, password, role)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created %s user %s (%s)\n", user.Role, user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password, 8 to 72 characters (required)")
	cmd.Flags().StringVar(&role, "role", auth.RoleAdmin, "Role: admin|user")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
