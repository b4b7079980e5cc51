package cmd

import (
	"fmt"
	"strconv"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/agentic-research/keysearch/internal/search"
)

var (
	searchOpts   searchFlags
	outputFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search [file] [keyword]",
	Short: "Search a document once and print the matching paths",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		searchOpts.merge(cmd, cfg)
		if !cmd.Flags().Changed("format") && cfg.Format != "" {
			outputFormat = cfg.Format
		}

		opts, err := searchOpts.options()
		if err != nil {
			return err
		}
		root, err := loadRoot(args[0], &searchOpts)
		if err != nil {
			return err
		}

		resp := search.Run(root, search.Request{
			Keyword: args[1],
			Depth:   strconv.Itoa(searchOpts.depth),
			Options: opts,
		})
		return writeResponse(cmd, resp, outputFormat)
	},
}

func writeResponse(cmd *cobra.Command, resp search.Response, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "", "text":
		_, _ = fmt.Fprintln(out, resp.Text)
	case "json":
		records := make([]any, 0, len(resp.Matches))
		for _, m := range resp.Matches {
			rec := map[string]any{"path": m.Path, "kind": string(m.Kind)}
			if m.Kind == search.ValueMatch {
				rec["value"] = m.Value
			}
			records = append(records, rec)
		}
		_, _ = fmt.Fprintln(out, oj.JSON(records, &oj.Options{Indent: 2, Sort: true}))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return resp.Err
}

func init() {
	searchOpts.register(searchCmd)
	searchCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	rootCmd.AddCommand(searchCmd)
}
