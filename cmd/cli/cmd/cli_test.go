package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picogrid/ctwrap/pkg/config"
	"github.com/picogrid/ctwrap/pkg/logger"
	"github.com/picogrid/ctwrap/pkg/simulation"
)

// execute runs the CLI with args and returns what it wrote to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeWithLogs(t, args...)
	return out, err
}

// executeWithLogs also returns everything written through the logger
func executeWithLogs(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var logs bytes.Buffer
	prev := logger.SetOutput(&logs)
	t.Cleanup(func() {
		logger.SetOutput(prev)
		logger.SetLevel(logger.InfoLevel)
		logger.SetNoColor(false)
	})

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--no-color"}, args...))

	err := root.Execute()
	return out.String(), logs.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CTWRAP_SKIP_PROMPTS", "true")
	t.Setenv("CTWRAP_SLEEP", "")
	return home
}

func TestListCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "template")
	assert.Contains(t, out, "1.0.0")
}

func TestRunCommandWithSet(t *testing.T) {
	isolate(t)

	out, err := execute(t, "run", "-m", "template", "-n", "x", "--set", "sleep=0")
	require.NoError(t, err)

	assert.Contains(t, out, "x:")
	assert.Contains(t, out, "sleep")
	assert.Contains(t, out, "\n0\n")
}

func TestRunCommandLogsParametersAtDebug(t *testing.T) {
	isolate(t)

	_, logs, err := executeWithLogs(t, "--log-level", "debug", "run", "-m", "template", "--set", "sleep=0", "--set", "label=a")
	require.NoError(t, err)
	assert.Contains(t, logs, "label: a")
	assert.Contains(t, logs, "sleep: 0")

	_, logs, err = executeWithLogs(t, "run", "-m", "template", "--set", "sleep=0")
	require.NoError(t, err)
	assert.NotContains(t, logs, "sleep: 0")
}

func TestRunCommandParamsFileAndPrecedence(t *testing.T) {
	home := isolate(t)
	params := filepath.Join(home, "params.yaml")
	require.NoError(t, os.WriteFile(params, []byte("sleep: 0.01\n"), 0644))

	out, err := execute(t, "run", "-m", "template", "-p", params)
	require.NoError(t, err)
	assert.Contains(t, out, "template:")
	assert.Contains(t, out, "0.01")

	out, err = execute(t, "run", "-m", "template", "-p", params, "--set", "sleep=0.02")
	require.NoError(t, err)
	assert.Contains(t, out, "0.02")
}

func TestRunCommandEnvironmentOverride(t *testing.T) {
	isolate(t)
	t.Setenv("CTWRAP_SLEEP", "5ms")

	out, err := execute(t, "run", "-m", "template")
	require.NoError(t, err)
	assert.Contains(t, out, "0.005")
}

func TestRunCommandRejectsNegativeSleep(t *testing.T) {
	isolate(t)

	_, err := execute(t, "run", "-m", "template", "--set", "sleep=-1")

	var perr *simulation.InvalidParameterError
	require.True(t, errors.As(err, &perr), "want *InvalidParameterError, got %v", err)
	assert.Equal(t, "sleep", perr.Param)
}

func TestRunCommandRequiresModule(t *testing.T) {
	isolate(t)

	_, err := execute(t, "run")
	assert.Error(t, err)

	_, err = execute(t, "run", "-m", "nonexistent")
	assert.Error(t, err)
}

func TestSelfTestCommand(t *testing.T) {
	isolate(t)

	out, err := execute(t, "selftest", "template")
	require.NoError(t, err)

	assert.Contains(t, out, "main:")
	assert.Contains(t, out, "0.2")
}

func TestPresetLifecycle(t *testing.T) {
	home := isolate(t)

	out, err := execute(t, "preset", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No presets configured")

	_, err = execute(t, "preset", "add", "--name", "quick", "-m", "template", "--set", "sleep=0.003")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, config.DirName, "presets.yaml"))
	require.NoError(t, err)

	out, err = execute(t, "preset", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "quick")
	assert.Contains(t, out, "sleep=0.003")

	out, err = execute(t, "run", "-m", "template", "--preset", "quick")
	require.NoError(t, err)
	assert.Contains(t, out, "0.003")

	_, err = execute(t, "preset", "add", "--name", "quick", "-m", "template")
	assert.Error(t, err, "duplicate preset names are rejected")

	_, err = execute(t, "preset", "remove", "quick", "-y")
	require.NoError(t, err)

	_, err = execute(t, "run", "-m", "template", "--preset", "quick")
	assert.Error(t, err)
}

func TestPresetAddRejectsInvalidOverrides(t *testing.T) {
	isolate(t)

	_, err := execute(t, "preset", "add", "--name", "broken", "-m", "template", "--set", "sleep=-2")
	assert.Error(t, err)

	out, err := execute(t, "preset", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "broken")
}

func TestExplicitConfigFileMustExist(t *testing.T) {
	home := isolate(t)

	_, err := execute(t, "--config", filepath.Join(home, "missing.yaml"), "list")
	assert.Error(t, err)

	cfg := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("log_level: debug\npresets_file: "+filepath.Join(home, "p.yaml")+"\n"), 0644))

	_, err = execute(t, "--config", cfg, "preset", "add", "--name", "p", "-m", "template")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(home, "p.yaml"))
	assert.NoError(t, err, "presets_file from the config file is honoured")
}
