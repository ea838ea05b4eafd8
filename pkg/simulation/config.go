package simulation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config maps option names to scalar values
type Config map[string]interface{}

// ModuleSpec describes a module and the parameters it accepts.
// It is loaded from the simulation.yaml embedded in each module package.
type ModuleSpec struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Version     string      `yaml:"version"`
	Category    string      `yaml:"category"`
	Parameters  []Parameter `yaml:"parameters"`
}

// Parameter defines a configurable parameter for a module
type Parameter struct {
	Name        string      `yaml:"name"`
	Type        string      `yaml:"type"` // integer, float, string, duration, boolean
	Description string      `yaml:"description"`
	Default     interface{} `yaml:"default"`
	Required    bool        `yaml:"required"`
	Min         interface{} `yaml:"min,omitempty"`
	Max         interface{} `yaml:"max,omitempty"`
	Options     []string    `yaml:"options,omitempty"` // For string enums
	Unit        string      `yaml:"unit,omitempty"`
}

// ParseConfig decodes a YAML document into a Config. An empty document yields
// an empty Config; anything that is not a mapping is a *ConfigParseError.
func ParseConfig(data []byte) (Config, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &ConfigParseError{Err: err}
	}

	cfg := Config{}
	if len(node.Content) == 0 {
		return cfg, nil
	}

	doc := node.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &ConfigParseError{Err: fmt.Errorf("line %d: expected a mapping at top level", doc.Line)}
	}

	if err := doc.Decode(&cfg); err != nil {
		return nil, &ConfigParseError{Err: err}
	}
	return cfg, nil
}

// ParseSpec decodes a simulation.yaml document
func ParseSpec(data []byte) (ModuleSpec, error) {
	var spec ModuleSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return ModuleSpec{}, &ConfigParseError{Err: err}
	}
	if spec.Name == "" {
		return ModuleSpec{}, &ConfigParseError{Err: fmt.Errorf("module spec has no name")}
	}
	return spec, nil
}

// Merge returns a new Config holding every key of defaults with the values of
// overrides laid over it. Neither argument is modified.
func Merge(defaults, overrides Config) Config {
	merged := make(Config, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// Clone returns a shallow copy of c
func (c Config) Clone() Config {
	return Merge(c, nil)
}

// Parameter returns the declared parameter with the given name
func (s ModuleSpec) Parameter(name string) (Parameter, bool) {
	for _, p := range s.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}
