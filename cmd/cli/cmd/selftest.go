package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picogrid/ctwrap/pkg/logger"
	"github.com/picogrid/ctwrap/pkg/simulation"
)

func newSelfTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "selftest [module...]",
		Short: "Smoke-test modules with their default configuration",
		Long: `Run each named module (all registered modules if none are given) once
under the name "main" with its default configuration.`,
		RunE: selfTest,
	}
}

func selfTest(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = simulation.DefaultRegistry.List()
	}

	for _, name := range names {
		m, err := simulation.DefaultRegistry.Get(name)
		if err != nil {
			return fmt.Errorf("failed to get module: %w", err)
		}

		logger.LogSection(fmt.Sprintf("Self-test %s", name))
		result, err := simulation.SelfTest(cmd.Context(), m)
		if err != nil {
			return fmt.Errorf("self-test of %s failed: %w", name, err)
		}

		printResult(cmd.OutOrStdout(), result)
		logger.Successf("%s passed", name)
	}

	return nil
}
