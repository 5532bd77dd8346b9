package commands

import (
	"context"

	"github.com/alextreichler/carrental/cmd/cli/output"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Bring the store schema up to date",
	Long: `Apply pending SQLite migrations, or create the MongoDB indexes
(unique admin email, booking creation time).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore(context.Background())
		if err != nil {
			return err
		}
		defer db.Close()
		output.Success("Schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
