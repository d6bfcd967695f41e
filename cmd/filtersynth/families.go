package main

import (
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-analog/analog/approx"
)

func familiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List approximation families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			printf(tw, "key\tname\n")

			for _, f := range approx.Families() {
				printf(tw, "%s\t%s\n", f.Key(), f)
			}

			return tw.Flush()
		},
	}
}
