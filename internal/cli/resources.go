package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Sternrassler/neis-client/pkg/resource"
)

const tabPadding = 2

func newResourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resources",
		Short: "List the NEIS datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)

			fmt.Fprintln(w, "Resource\tTitle")
			fmt.Fprintln(w, "--------\t-----")
			for _, r := range resource.All() {
				fmt.Fprintf(w, "%s\t%s\n", r, r.Title())
			}

			return w.Flush()
		},
	}
}
