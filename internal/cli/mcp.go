package cli

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/rpggio/stint/internal/mcp"
)

func newMCPCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the timeline as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(mcp.Config{
				Store:  app.Store,
				Clock:  app.Clock,
				Logger: app.Logger,
			})
			app.Logger.Info("starting stdio transport")
			return server.Run(cmd.Context(), &sdkmcp.StdioTransport{})
		},
	}
}
