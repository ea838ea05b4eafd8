package cmd

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/picogrid/ctwrap/pkg/config"
	"github.com/picogrid/ctwrap/pkg/simulation"
)

type presetAddOptions struct {
	name   string
	module string
	sets   []string
}

func newPresetCmd(v *viper.Viper) *cobra.Command {
	presetCmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage parameter presets",
		Long:  `Manage named sets of parameter overrides stored in the presets file`,
	}

	presetCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listPresets(cmd, v)
		},
	})

	addOpts := &presetAddOptions{}
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return addPreset(cmd, v, addOpts)
		},
	}
	addCmd.Flags().StringVar(&addOpts.name, "name", "", "preset name")
	addCmd.Flags().StringVarP(&addOpts.module, "module", "m", "", "module the preset applies to")
	addCmd.Flags().StringArrayVar(&addOpts.sets, "set", nil, "parameter override (key=value, repeatable)")
	presetCmd.AddCommand(addCmd)

	var yes bool
	removeCmd := &cobra.Command{
		Use:   "remove [name]",
		Short: "Remove a preset",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return removePreset(cmd, v, args, yes)
		},
	}
	removeCmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	presetCmd.AddCommand(removeCmd)

	return presetCmd
}

func loadPresets(v *viper.Viper) (*config.Presets, string, error) {
	path, err := presetsPath(v)
	if err != nil {
		return nil, "", err
	}
	presets, err := config.LoadPresetsFromFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load presets: %w", err)
	}
	return presets, path, nil
}

func listPresets(cmd *cobra.Command, v *viper.Viper) error {
	presets, _, err := loadPresets(v)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(presets.Presets) == 0 {
		_, _ = fmt.Fprintln(out, "No presets configured")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tMODULE\tOVERRIDES")
	_, _ = fmt.Fprintln(w, "----\t------\t---------")

	for _, p := range presets.Presets {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", p.Name, p.Module, formatOverrides(p.Overrides))
	}

	return w.Flush()
}

func formatOverrides(overrides map[string]interface{}) string {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, overrides[k])
	}
	return strings.Join(parts, " ")
}

func addPreset(cmd *cobra.Command, v *viper.Viper, opts *presetAddOptions) error {
	presets, path, err := loadPresets(v)
	if err != nil {
		return err
	}

	preset := config.Preset{Name: opts.name, Module: opts.module}

	if preset.Name == "" {
		if !interactive() {
			return fmt.Errorf("preset name is required (use --name)")
		}
		namePrompt := &survey.Input{Message: "Preset name:"}
		if err := survey.AskOne(namePrompt, &preset.Name, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if preset.Module == "" {
		preset.Module, err = selectModule("")
		if err != nil {
			return err
		}
	}

	m, err := simulation.DefaultRegistry.Get(preset.Module)
	if err != nil {
		return err
	}

	overrides, err := config.ParseAssignments(opts.sets)
	if err != nil {
		return err
	}

	// Reject values the module would refuse at run time
	defaults, err := m.Default()
	if err != nil {
		return err
	}
	if _, err := simulation.ValidateParameters(m.Spec(), simulation.Merge(defaults, overrides)); err != nil {
		return err
	}
	preset.Overrides = overrides

	if err := presets.Add(preset); err != nil {
		return err
	}

	if err := config.SavePresetsToFile(presets, path); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Preset %s added successfully\n", preset.Name)
	return nil
}

func removePreset(cmd *cobra.Command, v *viper.Viper, args []string, yes bool) error {
	presets, path, err := loadPresets(v)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(presets.Presets) == 0 {
		_, _ = fmt.Fprintln(out, "No presets to remove")
		return nil
	}

	var selected string
	if len(args) == 1 {
		selected = args[0]
	} else {
		if !interactive() {
			return fmt.Errorf("preset name is required")
		}
		names := make([]string, len(presets.Presets))
		for i, p := range presets.Presets {
			names[i] = p.Name
		}
		prompt := &survey.Select{
			Message: "Select preset to remove:",
			Options: names,
		}
		if err := survey.AskOne(prompt, &selected); err != nil {
			return err
		}
	}

	if _, ok := presets.Find(selected); !ok {
		return fmt.Errorf("preset %s not found", selected)
	}

	if !yes && interactive() {
		var confirm bool
		confirmPrompt := &survey.Confirm{
			Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
			Default: false,
		}
		if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
			return err
		}
		if !confirm {
			_, _ = fmt.Fprintln(out, "Removal cancelled")
			return nil
		}
	}

	presets.Remove(selected)

	if err := config.SavePresetsToFile(presets, path); err != nil {
		return fmt.Errorf("failed to save presets: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Preset %s removed successfully\n", selected)
	return nil
}
