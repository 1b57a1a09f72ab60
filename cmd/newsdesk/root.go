package main

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "newsdesk",
		Short: "Newsdesk - news site admin panel and article API",
		Long: `Newsdesk serves the article API, image uploads and the admin panel
used by editors to write and feature stories.

Configuration is read from the environment. A .env file is loaded first
when present.

Examples:
  # Run the server
  newsdesk serve

  # Print the route table
  newsdesk routes --format markdown

  # Create an admin account
  newsdesk user create --email editor@example.com --password 'long password'`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return err
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before reading configuration")

	root.AddCommand(newServeCmd())
	root.AddCommand(newRoutesCmd())
	root.AddCommand(newUserCmd())

	return root
}
