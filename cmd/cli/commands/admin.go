package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/alextreichler/carrental/cmd/cli/output"
	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

// addAdminCmd seeds an administrator without going through the API.
var addAdminCmd = &cobra.Command{
	Use:   "add-admin",
	Short: "Create an administrator account",
	Example: `  rentalctl add-admin --name "Jane Doe" --email jane@example.com --password s3cret
  rentalctl add-admin --driver mongo --mongo-uri mongodb://localhost:27017 --name Ops --email ops@example.com --password s3cret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminName == "" || adminEmail == "" || adminPassword == "" {
			return fmt.Errorf("--name, --email and --password are required")
		}

		ctx := context.Background()
		db, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer db.Close()

		return createAdmin(ctx, db, adminName, adminEmail, adminPassword)
	},
}

func init() {
	rootCmd.AddCommand(addAdminCmd)
	addAdminCmd.Flags().StringVar(&adminName, "name", "", "Administrator name")
	addAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Administrator email (must be unique)")
	addAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Administrator password")
}

func createAdmin(ctx context.Context, admins store.AdminStore, name, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		output.Error("Password must be at most 72 bytes")
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := admins.CreateAdmin(ctx, &models.Admin{Name: name, Email: email, Password: string(hashed)})
	if errors.Is(err, store.ErrDuplicateEmail) {
		output.Error("An admin with email %s already exists", email)
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	output.Success("Admin '%s' created (id %s)", admin.Email, admin.ID)
	return nil
}
