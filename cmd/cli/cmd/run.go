package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/picogrid/ctwrap/pkg/config"
	"github.com/picogrid/ctwrap/pkg/logger"
	"github.com/picogrid/ctwrap/pkg/simulation"
	"github.com/picogrid/ctwrap/pkg/utils"
)

type runOptions struct {
	module      string
	name        string
	paramsFile  string
	preset      string
	sets        []string
	interactive bool
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	opts := &runOptions{}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation module",
		Long: `Run a simulation module once. Parameters start from the module defaults
and are overridden, in order, by a preset, a YAML parameters file,
CTWRAP_<PARAM> environment variables and --set pairs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runModule(cmd, v, opts)
		},
	}

	runCmd.Flags().StringVarP(&opts.module, "module", "m", "", "module name to run")
	runCmd.Flags().StringVarP(&opts.name, "name", "n", "", "name to report results under (default is the module name)")
	runCmd.Flags().StringVarP(&opts.paramsFile, "params", "p", "", "parameters file (YAML)")
	runCmd.Flags().StringVar(&opts.preset, "preset", "", "saved preset to apply")
	runCmd.Flags().StringArrayVar(&opts.sets, "set", nil, "override a parameter (key=value, repeatable)")
	runCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for each parameter")

	return runCmd
}

func runModule(cmd *cobra.Command, v *viper.Viper, opts *runOptions) error {
	moduleName, err := selectModule(opts.module)
	if err != nil {
		return fmt.Errorf("failed to select module: %w", err)
	}

	m, err := simulation.DefaultRegistry.Get(moduleName)
	if err != nil {
		return fmt.Errorf("failed to get module: %w", err)
	}

	overrides, err := buildOverrides(v, m, opts)
	if err != nil {
		return fmt.Errorf("failed to load parameters: %w", err)
	}

	if opts.interactive && interactive() {
		defaults, err := m.Default()
		if err != nil {
			return err
		}
		overrides, err = utils.PromptForParameters(m.Spec().Parameters, simulation.Merge(defaults, overrides))
		if err != nil {
			return fmt.Errorf("failed to get parameters: %w", err)
		}
	}

	name := opts.name
	if name == "" {
		name = m.Name()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Warn("Received interrupt signal, stopping simulation...")
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.LogSection(fmt.Sprintf("Running %s", m.Name()))
	if logger.IsLevelEnabled(logger.DebugLevel) {
		if err := logParameters(m, overrides); err != nil {
			return err
		}
	}

	result, err := simulation.Execute(ctx, m, name, overrides)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	printResult(cmd.OutOrStdout(), result)
	logger.Success("Simulation completed successfully")
	return nil
}

// logParameters prints the merged configuration the module will run with
func logParameters(m simulation.Module, overrides simulation.Config) error {
	defaults, err := m.Default()
	if err != nil {
		return err
	}
	merged := simulation.Merge(defaults, overrides)

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		logger.LogKeyValue(k, merged[k])
	}
	return nil
}

// buildOverrides layers preset, parameters file, environment and --set values
func buildOverrides(v *viper.Viper, m simulation.Module, opts *runOptions) (simulation.Config, error) {
	overrides := simulation.Config{}

	if opts.preset != "" {
		path, err := presetsPath(v)
		if err != nil {
			return nil, err
		}
		presets, err := config.LoadPresetsFromFile(path)
		if err != nil {
			return nil, err
		}
		preset, ok := presets.Find(opts.preset)
		if !ok {
			return nil, fmt.Errorf("preset %s not found", opts.preset)
		}
		if preset.Module != m.Name() {
			return nil, fmt.Errorf("preset %s is for module %s, not %s", preset.Name, preset.Module, m.Name())
		}
		overrides = simulation.Merge(overrides, preset.Overrides)
	}

	if opts.paramsFile != "" {
		fromFile, err := config.LoadOverridesFile(opts.paramsFile)
		if err != nil {
			return nil, err
		}
		overrides = simulation.Merge(overrides, fromFile)
	}

	overrides = simulation.Merge(overrides, config.EnvOverrides(m.Spec()))

	sets, err := config.ParseAssignments(opts.sets)
	if err != nil {
		return nil, err
	}
	return simulation.Merge(overrides, sets), nil
}

func selectModule(name string) (string, error) {
	if name != "" {
		return name, nil
	}

	infos, err := utils.DescribeModules(simulation.DefaultRegistry)
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("no modules found")
	}
	if !interactive() {
		return "", fmt.Errorf("no module specified (use --module)")
	}

	options := make([]string, len(infos))
	descriptions := make(map[string]string)
	for i, info := range infos {
		options[i] = info.Name
		descriptions[info.Name] = info.Spec.Description
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select module:",
		Options: options,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return selected, nil
}

// printResult writes every table of result, sorted by run name
func printResult(w io.Writer, result simulation.Result) {
	names := make([]string, 0, len(result))
	for name := range result {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		table := result[name]
		_, _ = fmt.Fprintf(w, "%s:\n", name)

		out := logger.NewTable(table.Columns()...)
		for _, record := range table.Records() {
			out.AddRow(record...)
		}
		out.Render(w)
	}
}
