package cmd

import (
	"github.com/spf13/cobra"

	"github.com/agentic-research/keysearch/internal/panel"
)

var panelOpts searchFlags

var panelCmd = &cobra.Command{
	Use:   "panel [file]",
	Short: "Open an interactive search panel over a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		panelOpts.merge(cmd, cfg)

		opts, err := panelOpts.options()
		if err != nil {
			return err
		}
		root, err := loadRoot(args[0], &panelOpts)
		if err != nil {
			return err
		}
		return panel.Run(root, opts)
	},
}

func init() {
	panelOpts.register(panelCmd)
	rootCmd.AddCommand(panelCmd)
}
