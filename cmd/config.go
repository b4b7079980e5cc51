package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/agentic-research/keysearch/api"
)

// loadConfig reads the config file and applies it over the defaults. A
// missing default config file is not an error; a missing --config file is.
func loadConfig(path string) (api.Config, error) {
	cfg := api.DefaultConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".keysearch", "config.yaml")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// searchFlags are the flags shared by every command that runs searches.
type searchFlags struct {
	depth       int
	exclude     []string
	limit       int
	root        string
	inputFormat string
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.depth, "depth", "d", 500, "Maximum recursion depth")
	cmd.Flags().StringArrayVarP(&f.exclude, "exclude", "x", nil, "Skip paths matching this glob (repeatable)")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "Stop after this many matches (0 = unlimited)")
	cmd.Flags().StringVarP(&f.root, "root", "r", "", "JSONPath expression selecting the search root")
	cmd.Flags().StringVar(&f.inputFormat, "input-format", "", "Force the input format: yaml, hcl, js or sqlite")
}

// merge fills every flag the user did not set from cfg.
func (f *searchFlags) merge(cmd *cobra.Command, cfg api.Config) {
	if !cmd.Flags().Changed("depth") && cfg.Depth != 0 {
		f.depth = cfg.Depth
	}
	if !cmd.Flags().Changed("exclude") {
		f.exclude = cfg.Exclude
	}
	if !cmd.Flags().Changed("limit") {
		f.limit = cfg.Limit
	}
	if !cmd.Flags().Changed("root") {
		f.root = cfg.Root
	}
}
