package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/usestring/harscope/pkg/mcpsrv"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve <har>",
		Short: "Serve a HAR file to MCP clients over stdio",
		Long: `Start an MCP server on stdin/stdout exposing the archive through the
har_list_entries, har_get_entry, har_select_options, har_attribute_pairs and
har_query_body tools. Logs go to stderr or --log-file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			archives, err := loadArchives(ctx, args, 1)
			if err != nil {
				return err
			}

			server, err := mcpsrv.NewServer(archives[0],
				mcpsrv.WithConfig(g.cfg),
				mcpsrv.WithExistingLogging(),
				mcpsrv.WithVersion(Version),
			)
			if err != nil {
				return err
			}
			defer server.Close()

			slog.Info("starting harscope MCP server",
				"archive", archives[0].Path,
				"entries", len(archives[0].Entries),
				"version", Version,
			)
			if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("server error", "error", err)
				return err
			}
			slog.Info("server stopped")
			return nil
		},
	}
}
