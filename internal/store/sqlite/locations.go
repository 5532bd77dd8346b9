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

const locationColumns = `id, address, city, constituency, email, phone_number, image_url, filename, created_at`

func (s *Store) CreateLocation(ctx context.Context, loc *models.Location) (*models.Location, error) {
	if err := store.Validate(loc); err != nil {
		return nil, err
	}
	l := *loc
	l.ID = uuid.NewString()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	l.CreatedAt = l.CreatedAt.UTC()

	query := `
		INSERT INTO stores (` + locationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.DB.ExecContext(ctx, query, l.ID, l.Address, l.City, l.Constituency, l.Email, l.PhoneNumber, l.ImageURL, l.Filename, l.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}
	return &l, nil
}

func (s *Store) GetAllLocations(ctx context.Context) ([]models.Location, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+locationColumns+` FROM stores ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	locs := []models.Location{}
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locs = append(locs, *l)
	}
	return locs, rows.Err()
}

func (s *Store) GetLocationByID(ctx context.Context, id string) (*models.Location, error) {
	return getLocation(ctx, s.DB, id)
}

func (s *Store) UpdateLocation(ctx context.Context, id string, fn func(*models.Location) error) (*models.Location, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	l, err := getLocation(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(l); err != nil {
		return nil, err
	}
	l.ID = id
	if err := store.Validate(l); err != nil {
		return nil, err
	}

	query := `
		UPDATE stores
		SET address = ?, city = ?, constituency = ?, email = ?, phone_number = ?,
			image_url = ?, filename = ?, created_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, query, l.Address, l.City, l.Constituency, l.Email, l.PhoneNumber, l.ImageURL, l.Filename, l.CreatedAt.UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Store) DeleteLocation(ctx context.Context, id string) (*models.Location, error) {
	row := s.DB.QueryRowContext(ctx, `DELETE FROM stores WHERE id = ? RETURNING `+locationColumns, id)
	l, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return l, err
}

func getLocation(ctx context.Context, q querier, id string) (*models.Location, error) {
	row := q.QueryRowContext(ctx, `SELECT `+locationColumns+` FROM stores WHERE id = ?`, id)
	l, err := scanLocation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return l, err
}

func scanLocation(row rowScanner) (*models.Location, error) {
	var l models.Location
	if err := row.Scan(&l.ID, &l.Address, &l.City, &l.Constituency, &l.Email, &l.PhoneNumber, &l.ImageURL, &l.Filename, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}
