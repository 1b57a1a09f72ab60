package main

import (
	"context"
	"fmt"
	"io"

	"github.com/go-chi/docgen"
	"github.com/spf13/cobra"

	"newsdesk/internal/core"
	"newsdesk/internal/server"
)

// discardStore lets the route table include the upload endpoint without
// object storage credentials.
type discardStore struct{}

func (discardStore) PutObject(context.Context, string, io.Reader, int64, string) error {
	return nil
}

func newRoutesCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the HTTP route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := core.ConfigFromEnv()
			config.Database = core.DatabaseConfig{Driver: core.DriverSQLite, Path: ":memory:"}
			config.Features.Uploads.Enabled = true

			srv, err := server.New(config, core.NewDiscardLogger(), server.WithObjectStore(discardStore{}))
			if err != nil {
				return err
			}
			defer srv.Shutdown(cmd.Context())

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				fmt.Fprintln(out, docgen.JSONRoutesDoc(srv.Router()))
			case "markdown":
				fmt.Fprintln(out, docgen.MarkdownRoutesDoc(srv.Router(), docgen.MarkdownOpts{
					ProjectPath: "newsdesk",
					Intro:       "Routes served by newsdesk.",
				}))
			default:
				return fmt.Errorf("unknown format %q: want json or markdown", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json|markdown")
	return cmd
}
