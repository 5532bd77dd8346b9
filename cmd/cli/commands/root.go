package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alextreichler/carrental/internal/config"
	"github.com/alextreichler/carrental/internal/database"
	"github.com/alextreichler/carrental/internal/store"
	"github.com/spf13/cobra"
)

var (
	// Global flags, overriding the environment when set
	driver   string
	dbPath   string
	mongoURI string
)

var rootCmd = &cobra.Command{
	Use:   "rentalctl",
	Short: "Administration tool for the car rental backend",
	Long: `rentalctl manages the car rental store outside the HTTP API.

It reads the same environment variables as the server (DB_DRIVER, DB_PATH,
MONGO_URI, ...); the flags below take precedence.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driver, "driver", "", "Store backend: sqlite or mongo")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "SQLite database file")
	rootCmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection URI")
}

// openStore loads the configuration, applies the global flags and opens the
// selected backend with its schema in place.
func openStore(ctx context.Context) (store.Store, error) {
	if driver != "" {
		os.Setenv("DB_DRIVER", driver)
	}
	if mongoURI != "" {
		os.Setenv("MONGO_URI", mongoURI)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return database.Open(ctx, cfg)
}
