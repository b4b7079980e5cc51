package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/agentic-research/keysearch/internal/mcpserve"
)

var serveOpts searchFlags

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve keyword search over MCP on stdin/stdout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		serveOpts.merge(cmd, cfg)

		opts, err := serveOpts.options()
		if err != nil {
			return err
		}
		root, err := loadRoot(args[0], &serveOpts)
		if err != nil {
			return err
		}

		log.Printf("serving %s over MCP stdio", args[0])
		return mcpserve.ServeStdio(&mcpserve.Handler{Root: root, Options: opts})
	},
}

func init() {
	serveOpts.register(serveCmd)
	rootCmd.AddCommand(serveCmd)
}
