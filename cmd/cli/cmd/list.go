package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/picogrid/ctwrap/pkg/simulation"
	"github.com/picogrid/ctwrap/pkg/utils"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available modules",
		Long:  `List all registered simulation modules with their descriptions`,
		Args:  cobra.NoArgs,
		RunE:  listModules,
	}
}

func listModules(cmd *cobra.Command, _ []string) error {
	infos, err := utils.DescribeModules(simulation.DefaultRegistry)
	if err != nil {
		return fmt.Errorf("failed to discover modules: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		_, _ = fmt.Fprintln(out, "No modules found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tVERSION\tCATEGORY\tDESCRIPTION")
	_, _ = fmt.Fprintln(w, "----\t-------\t--------\t-----------")

	for _, info := range infos {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			info.Name,
			info.Spec.Version,
			info.Spec.Category,
			info.Spec.Description,
		)
	}

	return w.Flush()
}
