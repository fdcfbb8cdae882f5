package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nurpe/painel-mulher/internal/region"
)

var regionsVerbose bool

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Print the planning regions and their municipalities",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolver := region.New()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "REGIÃO\tMUNICÍPIOS")
		for _, reg := range resolver.Regions() {
			if regionsVerbose {
				fmt.Fprintf(w, "%s\t%s\n", reg, strings.Join(resolver.Municipalities(reg), ", "))
				continue
			}
			fmt.Fprintf(w, "%s\t%d\n", reg, resolver.Count(reg))
		}
		fmt.Fprintf(w, "Total\t%d\n", resolver.Total())
		return w.Flush()
	},
}

func init() {
	regionsCmd.Flags().BoolVar(&regionsVerbose, "list", false, "List municipality names instead of counts")
}
