package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"

	"github.com/mattsolo1/fzd/errors"
)

// PickerConfig selects and tunes the external fuzzy picker.
type PickerConfig struct {
	Binary         string `yaml:"binary,omitempty" toml:"binary,omitempty" json:"binary,omitempty" jsonschema:"description=Picker binary to drive (default: fzf)" jsonschema_extras:"x-priority=1"`
	PollIntervalMS int    `yaml:"poll_interval_ms,omitempty" toml:"poll_interval_ms,omitempty" json:"poll_interval_ms,omitempty" jsonschema:"description=Side-channel poll interval in milliseconds"`
	PollBudget     int    `yaml:"poll_budget,omitempty" toml:"poll_budget,omitempty" json:"poll_budget,omitempty" jsonschema:"description=Maximum side-channel poll attempts after picker exit"`
}

// SearchConfig tunes the global search overlay.
type SearchConfig struct {
	Backend     string   `yaml:"backend,omitempty" toml:"backend,omitempty" json:"backend,omitempty" jsonschema:"description=Search backend: indexed | rebuilt-index | disabled (auto-selected when empty),enum=,enum=indexed,enum=rebuilt-index,enum=disabled"`
	MinQueryLen int      `yaml:"min_query_len,omitempty" toml:"min_query_len,omitempty" json:"min_query_len,omitempty" jsonschema:"description=Minimum query length before the backend is consulted"`
	MaxResults  int      `yaml:"max_results,omitempty" toml:"max_results,omitempty" json:"max_results,omitempty" jsonschema:"description=Cap on results returned per query"`
	Roots       []string `yaml:"roots,omitempty" toml:"roots,omitempty" json:"roots,omitempty" jsonschema:"description=Directories results must live under (default: home directory)"`
	Exclude     []string `yaml:"exclude,omitempty" toml:"exclude,omitempty" json:"exclude,omitempty" jsonschema:"description=Glob patterns hidden from results (e.g. .git, node_modules)"`
}

// PreviewConfig bounds the preview pane renderer.
type PreviewConfig struct {
	Depth     int `yaml:"depth,omitempty" toml:"depth,omitempty" json:"depth,omitempty" jsonschema:"description=Directory tree recursion depth"`
	MaxLines  int `yaml:"max_lines,omitempty" toml:"max_lines,omitempty" json:"max_lines,omitempty" jsonschema:"description=Line cap for tree and excerpt output"`
	TimeoutMS int `yaml:"timeout_ms,omitempty" toml:"timeout_ms,omitempty" json:"timeout_ms,omitempty" jsonschema:"description=Render deadline in milliseconds; partial output is kept on expiry"`
}

// ColorConfig overrides the frame's entry styling. Empty values leave the
// terminal defaults in place.
type ColorConfig struct {
	Dir  string `yaml:"dir,omitempty" toml:"dir,omitempty" json:"dir,omitempty" jsonschema:"description=ANSI or hex color for directory entries (e.g. 33 or #89b4fa)"`
	File string `yaml:"file,omitempty" toml:"file,omitempty" json:"file,omitempty" jsonschema:"description=ANSI or hex color for file entries"`
}

// Config is the full fzd configuration.
type Config struct {
	Picker   PickerConfig  `yaml:"picker,omitempty" toml:"picker,omitempty" json:"picker,omitempty" jsonschema:"description=External picker selection and tuning"`
	Search   SearchConfig  `yaml:"search,omitempty" toml:"search,omitempty" json:"search,omitempty" jsonschema:"description=Global search overlay behavior"`
	Preview  PreviewConfig `yaml:"preview,omitempty" toml:"preview,omitempty" json:"preview,omitempty" jsonschema:"description=Preview pane bounds"`
	Colors   ColorConfig   `yaml:"colors,omitempty" toml:"colors,omitempty" json:"colors,omitempty" jsonschema:"description=Entry styling overrides"`
	Editor   string        `yaml:"editor,omitempty" toml:"editor,omitempty" json:"editor,omitempty" jsonschema:"description=Editor command for opening files (falls back to $EDITOR then vi)"`
	LogLevel string        `yaml:"log_level,omitempty" toml:"log_level,omitempty" json:"log_level,omitempty" jsonschema:"description=Log file verbosity: debug | info | warn | error"`

	// Extensions captures all other top-level keys for extensibility.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// Known backend names. Mirrored by the search package's selection logic.
const (
	BackendIndexed  = "indexed"
	BackendRebuilt  = "rebuilt-index"
	BackendDisabled = "disabled"
)

// SetDefaults fills in zero-valued fields.
func (c *Config) SetDefaults() {
	if c.Picker.Binary == "" {
		c.Picker.Binary = "fzf"
	}
	if c.Picker.PollIntervalMS <= 0 {
		c.Picker.PollIntervalMS = 5
	}
	if c.Picker.PollBudget <= 0 {
		c.Picker.PollBudget = 20
	}
	if c.Search.MinQueryLen <= 0 {
		c.Search.MinQueryLen = 2
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 500
	}
	if len(c.Search.Roots) == 0 {
		c.Search.Roots = []string{defaultRoot()}
	}
	if c.Preview.Depth <= 0 {
		c.Preview.Depth = 2
	}
	if c.Preview.MaxLines <= 0 {
		c.Preview.MaxLines = 100
	}
	if c.Preview.TimeoutMS <= 0 {
		c.Preview.TimeoutMS = 1500
	}
}

func defaultRoot() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "/"
}

// Validate checks semantic constraints the schema cannot express.
func (c *Config) Validate() error {
	switch c.Search.Backend {
	case "", BackendIndexed, BackendRebuilt, BackendDisabled:
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown search backend %q", c.Search.Backend)).
			WithDetail("backend", c.Search.Backend)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("unknown log level %q", c.LogLevel)).
			WithDetail("log_level", c.LogLevel)
	}
	return nil
}

// UnmarshalExtension decodes a named extension section into target, which
// must be a pointer. A missing key leaves target zero-valued.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create extension decoder: %w", err)
	}
	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension %q: %w", key, err)
	}
	return nil
}
