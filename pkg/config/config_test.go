package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/ctwrap/pkg/simulation"
)

func TestPresetsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "presets.yaml")

	presets, err := LoadPresetsFromFile(path)
	require.NoError(t, err)
	assert.Empty(t, presets.Presets, "a missing file yields no presets")

	require.NoError(t, presets.Add(Preset{Name: "quick", Module: "template", Overrides: map[string]interface{}{"sleep": 0.0}}))
	require.NoError(t, presets.Add(Preset{Name: "slow", Module: "template", Overrides: map[string]interface{}{"sleep": 2.5}}))
	require.NoError(t, SavePresetsToFile(presets, path))

	loaded, err := LoadPresetsFromFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Presets, 2)

	slow, ok := loaded.Find("slow")
	require.True(t, ok)
	assert.Equal(t, "template", slow.Module)
	assert.Equal(t, 2.5, slow.Overrides["sleep"])
}

func TestPresetsAddValidation(t *testing.T) {
	presets := &Presets{}

	assert.Error(t, presets.Add(Preset{Module: "template"}))
	assert.Error(t, presets.Add(Preset{Name: "p"}))
	require.NoError(t, presets.Add(Preset{Name: "p", Module: "template"}))
	assert.Error(t, presets.Add(Preset{Name: "p", Module: "template"}))
}

func TestPresetsRemove(t *testing.T) {
	presets := &Presets{Presets: []Preset{
		{Name: "a", Module: "template"},
		{Name: "b", Module: "template"},
	}}

	assert.True(t, presets.Remove("a"))
	assert.False(t, presets.Remove("a"))
	assert.Equal(t, []Preset{{Name: "b", Module: "template"}}, presets.Presets)
}

func TestLoadPresetsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets: [\n"), 0644))

	_, err := LoadPresetsFromFile(path)
	assert.Error(t, err)
}

func TestLoadOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sleep: 0.5\nLabel: sweep\n"), 0644))

	overrides, err := LoadOverridesFile(path)
	require.NoError(t, err)

	assert.Equal(t, 0.5, overrides["sleep"])
	assert.Equal(t, "sweep", overrides["Label"], "key case is preserved")
	assert.NotContains(t, overrides, "label")
}

func TestLoadOverridesFileMixedCaseParameter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dropRate: 0.3\n"), 0644))

	overrides, err := LoadOverridesFile(path)
	require.NoError(t, err)

	spec := simulation.ModuleSpec{
		Name:       "mixed",
		Parameters: []simulation.Parameter{{Name: "dropRate", Type: "float", Default: 0.1}},
	}
	values, err := simulation.ValidateParameters(spec, overrides)
	require.NoError(t, err)
	assert.Equal(t, 0.3, values["dropRate"])
}

func TestLoadOverridesFileErrors(t *testing.T) {
	_, err := LoadOverridesFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sleep: [0.5\n"), 0644))

	_, err = LoadOverridesFile(path)
	var perr *simulation.ConfigParseError
	assert.True(t, errors.As(err, &perr), "want *ConfigParseError, got %v", err)
}

func TestParseAssignments(t *testing.T) {
	overrides, err := ParseAssignments([]string{"sleep=0.5", "verbose=true", "label=run one", "count=3", "empty="})
	require.NoError(t, err)

	assert.Equal(t, simulation.Config{
		"sleep":   0.5,
		"verbose": true,
		"label":   "run one",
		"count":   3,
		"empty":   "",
	}, overrides)
}

func TestParseAssignmentsErrors(t *testing.T) {
	for _, pair := range []string{"sleep", "=0.5", "sleep=[1"} {
		_, err := ParseAssignments([]string{pair})
		assert.Error(t, err, pair)
	}
}

func TestEnvOverrides(t *testing.T) {
	spec := simulation.ModuleSpec{
		Name: "template",
		Parameters: []simulation.Parameter{
			{Name: "sleep", Type: "float"},
			{Name: "label", Type: "string"},
		},
	}

	t.Setenv("CTWRAP_SLEEP", "1.5")
	t.Setenv("CTWRAP_UNRELATED", "x")

	assert.Equal(t, simulation.Config{"sleep": "1.5"}, EnvOverrides(spec))
	assert.Equal(t, "CTWRAP_SLEEP", EnvKey("sleep"))
}

func TestSkipPrompts(t *testing.T) {
	t.Setenv("CTWRAP_SKIP_PROMPTS", "true")
	assert.True(t, SkipPrompts())

	t.Setenv("CTWRAP_SKIP_PROMPTS", "")
	assert.False(t, SkipPrompts())
}
