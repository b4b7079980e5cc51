package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "keysearch",
	Short: "Recursively search a document tree for a keyword in member names and string values",
	Long: `keysearch loads a JSON, YAML, HCL, JavaScript state dump or SQLite results
database and reports every path whose member name or string value contains
the keyword, down to a configurable depth.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default $HOME/.keysearch/config.yaml)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
