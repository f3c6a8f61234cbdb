package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "Print the estrato threshold reference tables",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

		fmt.Fprintln(w, "CONFERENCES (H5 index)\t")
		fmt.Fprintln(w, "ESTRATO\tH5")
		fmt.Fprintln(w, "A1\t>= 35")
		fmt.Fprintln(w, "A2\t>= 25")
		fmt.Fprintln(w, "A3\t>= 20")
		fmt.Fprintln(w, "A4\t>= 15")
		fmt.Fprintln(w, "A5\t>= 12")
		fmt.Fprintln(w, "A6\t>= 9")
		fmt.Fprintln(w, "A7\t>= 6")
		fmt.Fprintln(w, "A8\t> 0")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "JOURNALS (percentile)\t")
		fmt.Fprintln(w, "ESTRATO\tPERCENTILE")
		fmt.Fprintln(w, "A1\t>= 87.5")
		fmt.Fprintln(w, "A2\t>= 75.0")
		fmt.Fprintln(w, "A3\t>= 62.5")
		fmt.Fprintln(w, "A4\t>= 50.0")
		fmt.Fprintln(w, "A5\t>= 37.5")
		fmt.Fprintln(w, "A6\t>= 25.0")
		fmt.Fprintln(w, "A7\t>= 12.5")
		fmt.Fprintln(w, "A8\t< 12.5")
		_ = w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(tiersCmd)
}
