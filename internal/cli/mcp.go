package cli

import (
	"github.com/spf13/cobra"

	"github.com/tideorm/tide/internal/mcpserver"
)

// MCPCmd returns the mcp command.
func MCPCmd(o *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the generators over MCP on stdio",
		Long: `Run a Model Context Protocol server on stdin and stdout. Every tool
works on the project directory given by --dir.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.ServeStdio(mcpserver.Config{
				Dir:        o.Dir,
				ConfigPath: o.Config,
				Version:    cmd.Root().Version,
				Logger:     o.logger(cmd),
			})
		},
	}
}
