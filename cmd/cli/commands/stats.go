package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alextreichler/carrental/cmd/cli/output"
	"github.com/spf13/cobra"
)

var jsonOutput bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many records each collection holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		counts, err := db.Counts(ctx)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]int{
				"cars":     counts.Cars,
				"stores":   counts.Locations,
				"bookings": counts.Bookings,
				"admins":   counts.Admins,
			})
		}

		output.Header("Collections")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "cars\t%d\n", counts.Cars)
		fmt.Fprintf(w, "stores\t%d\n", counts.Locations)
		fmt.Fprintf(w, "bookings\t%d\n", counts.Bookings)
		fmt.Fprintf(w, "admins\t%d\n", counts.Admins)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
