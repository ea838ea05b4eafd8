package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/picogrid/ctwrap/pkg/simulation"
)

// EnvPrefix prefixes every environment variable the CLI reads
const EnvPrefix = "CTWRAP"

// LoadOverridesFile reads a YAML override document. viper checks that the
// file is readable YAML; the document itself is decoded with yaml.v3 because
// viper folds keys to lower case and parameter names are case-sensitive.
func LoadOverridesFile(path string) (simulation.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr != nil {
			return nil, fmt.Errorf("failed to read overrides file: %w", statErr)
		}
		return nil, &simulation.ConfigParseError{Err: err}
	}

	data, err := os.ReadFile(v.ConfigFileUsed())
	if err != nil {
		return nil, fmt.Errorf("failed to read overrides file: %w", err)
	}

	return simulation.ParseConfig(data)
}

// ParseAssignments parses key=value pairs. Each value is decoded as a YAML
// scalar, so "0.5" becomes a float and "true" a bool.
func ParseAssignments(pairs []string) (simulation.Config, error) {
	out := simulation.Config{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid assignment %q (want key=value)", pair)
		}

		var value interface{}
		if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", key, err)
		}
		if value == nil {
			value = raw
		}
		out[key] = value
	}
	return out, nil
}

// EnvKey returns the environment variable that overrides a parameter
func EnvKey(param string) string {
	return EnvPrefix + "_" + strings.ToUpper(param)
}

// EnvOverrides collects CTWRAP_<PARAM> values for every declared parameter
func EnvOverrides(spec simulation.ModuleSpec) simulation.Config {
	out := simulation.Config{}
	for _, param := range spec.Parameters {
		if value, ok := os.LookupEnv(EnvKey(param.Name)); ok && value != "" {
			out[param.Name] = value
		}
	}
	return out
}

// SkipPrompts reports whether interactive prompts are disabled (for CI/automation)
func SkipPrompts() bool {
	return os.Getenv(EnvPrefix+"_SKIP_PROMPTS") == "true"
}
