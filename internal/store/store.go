// Package store defines the entity store used by the HTTP handlers and the
// errors its backends report. Concrete backends live in the sqlite and mongo
// subpackages.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/alextreichler/carrental/internal/models"
)

var (
	// ErrNotFound is returned when no entity has the requested id or key.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when an admin with the same email exists.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ValidationError reports a required field that is missing or malformed.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// CarStore persists car listings.
type CarStore interface {
	CreateCar(ctx context.Context, car *models.Car) (*models.Car, error)
	GetAllCars(ctx context.Context) ([]models.Car, error)
	GetCarByID(ctx context.Context, id string) (*models.Car, error)
	// UpdateCar loads the car, applies fn to it, re-validates and saves it.
	UpdateCar(ctx context.Context, id string, fn func(*models.Car) error) (*models.Car, error)
	DeleteCar(ctx context.Context, id string) (*models.Car, error)
}

// LocationStore persists rental store locations.
type LocationStore interface {
	CreateLocation(ctx context.Context, loc *models.Location) (*models.Location, error)
	GetAllLocations(ctx context.Context) ([]models.Location, error)
	GetLocationByID(ctx context.Context, id string) (*models.Location, error)
	UpdateLocation(ctx context.Context, id string, fn func(*models.Location) error) (*models.Location, error)
	DeleteLocation(ctx context.Context, id string) (*models.Location, error)
}

// BookingStore persists bookings. Bookings are immutable once created.
type BookingStore interface {
	CreateBooking(ctx context.Context, b *models.Booking) (*models.Booking, error)
	// GetAllBookings returns bookings newest first.
	GetAllBookings(ctx context.Context) ([]models.Booking, error)
}

// AdminStore persists administrator accounts.
type AdminStore interface {
	// CreateAdmin returns ErrDuplicateEmail if the email is taken.
	CreateAdmin(ctx context.Context, a *models.Admin) (*models.Admin, error)
	// GetAllAdmins returns admins by registration time, newest first.
	GetAllAdmins(ctx context.Context) ([]models.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// Counts holds per-collection totals.
type Counts struct {
	Cars      int
	Locations int
	Bookings  int
	Admins    int
}

// Store is the full entity store handed to the handlers.
type Store interface {
	CarStore
	LocationStore
	BookingStore
	AdminStore

	Counts(ctx context.Context) (*Counts, error)
	Ping(ctx context.Context) error
	Close() error
}
