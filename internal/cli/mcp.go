package cli

import (
	"github.com/spf13/cobra"

	"github.com/iWorld-y/saas_validator/app/validator/pkg/logger"
	"github.com/iWorld-y/saas_validator/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve get_trends and validate_idea as MCP tools over stdio.",
	Long: `Start a Model Context Protocol server on stdin/stdout so AI assistants
can look up keyword trends and validate ideas. Logs go to stderr.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		e, provider, err := newEngine()
		if err != nil {
			return err
		}
		logger.Log.Info("MCP 服务启动")
		return mcp.ServeStdio(mcp.NewMCPServer(version, provider, e))
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
