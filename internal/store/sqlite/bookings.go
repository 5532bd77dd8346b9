package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
	"github.com/google/uuid"
)

const bookingColumns = `id, car_id, car_image, first_name, last_name, contact_info, pickup_location, pickup_date, return_date, rental_days, created_at`

func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := store.Validate(booking); err != nil {
		return nil, err
	}
	b := *booking
	b.ID = uuid.NewString()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	b.CreatedAt = b.CreatedAt.UTC()

	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.DB.ExecContext(ctx, query, b.ID, b.CarID, b.CarImage, b.FirstName, b.LastName, b.ContactInfo, b.PickupLocation, b.PickupDate.UTC(), b.ReturnDate.UTC(), b.RentalDays, b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return &b, nil
}

func (s *Store) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY created_at DESC, rowid DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.CarID, &b.CarImage, &b.FirstName, &b.LastName, &b.ContactInfo, &b.PickupLocation, &b.PickupDate, &b.ReturnDate, &b.RentalDays, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
