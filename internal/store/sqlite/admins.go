package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
	"github.com/google/uuid"
)

const adminColumns = `id, name, email, password, registered_at`

// CreateAdmin relies on the UNIQUE constraint on email, so concurrent
// registrations with the same address cannot both succeed.
func (s *Store) CreateAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	if err := store.Validate(admin); err != nil {
		return nil, err
	}
	a := *admin
	a.ID = uuid.NewString()
	if a.RegisteredAt.IsZero() {
		a.RegisteredAt = time.Now()
	}
	a.RegisteredAt = a.RegisteredAt.UTC()

	query := `INSERT INTO admins (` + adminColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := s.DB.ExecContext(ctx, query, a.ID, a.Name, a.Email, a.Password, a.RegisteredAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return &a, nil
}

func (s *Store) GetAllAdmins(ctx context.Context) ([]models.Admin, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY registered_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	admins := []models.Admin{}
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.RegisteredAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = ?`, email)

	var a models.Admin
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.RegisteredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
