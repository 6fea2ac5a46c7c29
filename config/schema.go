package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the Config struct into the JSON Schema embedded by
// the schema package. The Extensions field is excluded: unknown top-level
// keys belong to extensions and are not validated.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		FieldNameTag:              "yaml",
	}

	type BaseConfig struct {
		Picker   PickerConfig  `yaml:"picker,omitempty" jsonschema:"description=External picker selection and tuning"`
		Search   SearchConfig  `yaml:"search,omitempty" jsonschema:"description=Global search overlay behavior"`
		Preview  PreviewConfig `yaml:"preview,omitempty" jsonschema:"description=Preview pane bounds"`
		Colors   ColorConfig   `yaml:"colors,omitempty" jsonschema:"description=Entry styling overrides"`
		Editor   string        `yaml:"editor,omitempty" jsonschema:"description=Editor command for opening files (falls back to $EDITOR then vi)"`
		LogLevel string        `yaml:"log_level,omitempty" jsonschema:"description=Log file verbosity: debug | info | warn | error"`
	}

	schema := r.Reflect(&BaseConfig{})
	schema.Title = "fzd Configuration"
	schema.Description = "Schema for the fzd config.yml file."

	return json.MarshalIndent(schema, "", "  ")
}
