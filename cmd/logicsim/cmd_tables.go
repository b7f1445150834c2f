package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/db47h/logicsim/tablib"
)

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tables",
		Short: "List the standard truth table registry",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tIN\tOUT")
			for id, t := range tablib.Registry() {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", id, t.Name, t.NumInputs, t.NumOutputs)
			}
			w.Flush()
		},
	}
}
