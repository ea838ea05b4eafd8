package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DirName is the per-user configuration directory under $HOME
const DirName = ".ctwrap"

// Preset is a named set of parameter overrides for one module
type Preset struct {
	Name      string                 `yaml:"name"`
	Module    string                 `yaml:"module"`
	Overrides map[string]interface{} `yaml:"overrides,omitempty"`
}

// Presets holds the saved presets
type Presets struct {
	Presets []Preset `yaml:"presets"`
}

// DefaultPresetsPath returns $HOME/.ctwrap/presets.yaml
func DefaultPresetsPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, DirName, "presets.yaml"), nil
}

// LoadPresetsFromFile loads presets from path. A missing file yields no presets.
func LoadPresetsFromFile(path string) (*Presets, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Presets{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var presets Presets
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}

	return &presets, nil
}

// SavePresetsToFile writes presets to path, creating its directory
func SavePresetsToFile(presets *Presets, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write presets file: %w", err)
	}

	return nil
}

// Find returns the preset with the given name
func (p *Presets) Find(name string) (*Preset, bool) {
	for i := range p.Presets {
		if p.Presets[i].Name == name {
			return &p.Presets[i], true
		}
	}
	return nil, false
}

// Add appends a preset; names must be unique
func (p *Presets) Add(preset Preset) error {
	if preset.Name == "" {
		return fmt.Errorf("preset name is required")
	}
	if preset.Module == "" {
		return fmt.Errorf("preset %s has no module", preset.Name)
	}
	if _, exists := p.Find(preset.Name); exists {
		return fmt.Errorf("preset %s already exists", preset.Name)
	}
	p.Presets = append(p.Presets, preset)
	return nil
}

// Remove deletes the named preset and reports whether it existed
func (p *Presets) Remove(name string) bool {
	kept := make([]Preset, 0, len(p.Presets))
	for _, preset := range p.Presets {
		if preset.Name != name {
			kept = append(kept, preset)
		}
	}
	removed := len(kept) != len(p.Presets)
	p.Presets = kept
	return removed
}
