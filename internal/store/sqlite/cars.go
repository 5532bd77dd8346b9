package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
	"github.com/google/uuid"
)

const carColumns = `id, make, model, year, price_per_day, image_url, filename, type, seats, transmission, features, created_at`

func (s *Store) CreateCar(ctx context.Context, car *models.Car) (*models.Car, error) {
	if err := store.Validate(car); err != nil {
		return nil, err
	}
	c := *car
	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	c.CreatedAt = c.CreatedAt.UTC()
	if c.Features == nil {
		c.Features = []string{}
	}
	features, err := json.Marshal(c.Features)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO cars (` + carColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.DB.ExecContext(ctx, query, c.ID, c.Make, c.Model, c.Year, c.PricePerDay, c.ImageURL, c.Filename, c.Type, c.Seats, c.Transmission, string(features), c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert car: %w", err)
	}
	return &c, nil
}

// GetAllCars returns cars in insertion order.
func (s *Store) GetAllCars(ctx context.Context) ([]models.Car, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+carColumns+` FROM cars ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cars := []models.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

func (s *Store) GetCarByID(ctx context.Context, id string) (*models.Car, error) {
	return getCar(ctx, s.DB, id)
}

func (s *Store) UpdateCar(ctx context.Context, id string, fn func(*models.Car) error) (*models.Car, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c, err := getCar(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	c.ID = id
	if err := store.Validate(c); err != nil {
		return nil, err
	}
	if c.Features == nil {
		c.Features = []string{}
	}
	features, err := json.Marshal(c.Features)
	if err != nil {
		return nil, err
	}

	query := `
		UPDATE cars
		SET make = ?, model = ?, year = ?, price_per_day = ?, image_url = ?, filename = ?,
			type = ?, seats = ?, transmission = ?, features = ?, created_at = ?
		WHERE id = ?
	`
	_, err = tx.ExecContext(ctx, query, c.Make, c.Model, c.Year, c.PricePerDay, c.ImageURL, c.Filename, c.Type, c.Seats, c.Transmission, string(features), c.CreatedAt.UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update car: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) DeleteCar(ctx context.Context, id string) (*models.Car, error) {
	row := s.DB.QueryRowContext(ctx, `DELETE FROM cars WHERE id = ? RETURNING `+carColumns, id)
	c, err := scanCar(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return c, err
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getCar(ctx context.Context, q querier, id string) (*models.Car, error) {
	row := q.QueryRowContext(ctx, `SELECT `+carColumns+` FROM cars WHERE id = ?`, id)
	c, err := scanCar(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return c, err
}

func scanCar(row rowScanner) (*models.Car, error) {
	var c models.Car
	var features string
	if err := row.Scan(&c.ID, &c.Make, &c.Model, &c.Year, &c.PricePerDay, &c.ImageURL, &c.Filename, &c.Type, &c.Seats, &c.Transmission, &features, &c.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(features), &c.Features); err != nil {
		return nil, fmt.Errorf("decode features of car %s: %w", c.ID, err)
	}
	return &c, nil
}
