package api

// Config holds defaults for search runs. It is read from
// $HOME/.keysearch/config.yaml when present; command-line flags win.
type Config struct {
	// Depth is the default maximum recursion depth.
	Depth int `yaml:"depth" json:"depth"`
	// Exclude lists path globs skipped during traversal.
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	// Limit caps the number of matches (0 = unlimited).
	Limit int `yaml:"limit,omitempty" json:"limit,omitempty"`
	// Format is the output format of the search command: text or json.
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	// Root is a JSONPath expression selecting the search root.
	Root string `yaml:"root,omitempty" json:"root,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Depth:  500,
		Format: "text",
	}
}
