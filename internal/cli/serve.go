package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/design-indexer/internal/server"
)

func newServeCmd(opts *rootOptions, build BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server on stdin/stdout",
		Long: `Run the design indexer as an MCP (Model Context Protocol) server.

Requests are read from stdin as JSON-RPC 2.0, one per line, and responses are
written to stdout. Logs go to stderr. Configure this command in your MCP
client to give it the image_info, design_tile_dimensions,
design_quantize_color and design_index tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			logger := newLogger(cmd.ErrOrStderr(), opts.verbose)
			logger.Debug("starting", "version", build.Version, "build_time", build.BuildTime, "commit", build.GitCommit)

			srv := server.New(logger.Named("server"), build.Version)
			return srv.Serve(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
