package mongostore

import (
	"context"
	"fmt"

	"github.com/alextreichler/carrental/internal/models"
	"github.com/alextreichler/carrental/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *Store) CreateCar(ctx context.Context, car *models.Car) (*models.Car, error) {
	if err := store.Validate(car); err != nil {
		return nil, err
	}
	c := *car
	c.ID = newID()
	c.CreatedAt = stamp(c.CreatedAt)
	if c.Features == nil {
		c.Features = []string{}
	}
	if _, err := s.db.Collection(carsCollection).InsertOne(ctx, c); err != nil {
		return nil, fmt.Errorf("insert car: %w", err)
	}
	return &c, nil
}

func (s *Store) GetAllCars(ctx context.Context) ([]models.Car, error) {
	return findAll[models.Car](ctx, s.db.Collection(carsCollection))
}

func (s *Store) GetCarByID(ctx context.Context, id string) (*models.Car, error) {
	return findOne[models.Car](ctx, s.db.Collection(carsCollection), bson.M{"_id": id})
}

func (s *Store) UpdateCar(ctx context.Context, id string, fn func(*models.Car) error) (*models.Car, error) {
	return update(ctx, s.db.Collection(carsCollection), id, func(c *models.Car) error {
		if err := fn(c); err != nil {
			return err
		}
		c.CreatedAt = stamp(c.CreatedAt)
		return nil
	}, func(c *models.Car) { c.ID = id })
}

func (s *Store) DeleteCar(ctx context.Context, id string) (*models.Car, error) {
	return deleteOne[models.Car](ctx, s.db.Collection(carsCollection), id)
}

func (s *Store) CreateLocation(ctx context.Context, loc *models.Location) (*models.Location, error) {
	if err := store.Validate(loc); err != nil {
		return nil, err
	}
	l := *loc
	l.ID = newID()
	l.CreatedAt = stamp(l.CreatedAt)
	if _, err := s.db.Collection(storesCollection).InsertOne(ctx, l); err != nil {
		return nil, fmt.Errorf("insert store: %w", err)
	}
	return &l, nil
}

func (s *Store) GetAllLocations(ctx context.Context) ([]models.Location, error) {
	return findAll[models.Location](ctx, s.db.Collection(storesCollection))
}

func (s *Store) GetLocationByID(ctx context.Context, id string) (*models.Location, error) {
	return findOne[models.Location](ctx, s.db.Collection(storesCollection), bson.M{"_id": id})
}

func (s *Store) UpdateLocation(ctx context.Context, id string, fn func(*models.Location) error) (*models.Location, error) {
	return update(ctx, s.db.Collection(storesCollection), id, func(l *models.Location) error {
		if err := fn(l); err != nil {
			return err
		}
		l.CreatedAt = stamp(l.CreatedAt)
		return nil
	}, func(l *models.Location) { l.ID = id })
}

func (s *Store) DeleteLocation(ctx context.Context, id string) (*models.Location, error) {
	return deleteOne[models.Location](ctx, s.db.Collection(storesCollection), id)
}

func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	if err := store.Validate(booking); err != nil {
		return nil, err
	}
	b := *booking
	b.ID = newID()
	b.CreatedAt = stamp(b.CreatedAt)
	b.PickupDate = stamp(b.PickupDate)
	b.ReturnDate = stamp(b.ReturnDate)
	if _, err := s.db.Collection(bookingsCollection).InsertOne(ctx, b); err != nil {
		return nil, fmt.Errorf("insert booking: %w", err)
	}
	return &b, nil
}

func (s *Store) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return findAll[models.Booking](ctx, s.db.Collection(bookingsCollection), opts)
}

// CreateAdmin depends on the unique email index created by EnsureIndexes.
func (s *Store) CreateAdmin(ctx context.Context, admin *models.Admin) (*models.Admin, error) {
	if err := store.Validate(admin); err != nil {
		return nil, err
	}
	a := *admin
	a.ID = newID()
	a.RegisteredAt = stamp(a.RegisteredAt)
	if _, err := s.db.Collection(adminsCollection).InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return &a, nil
}

func (s *Store) GetAllAdmins(ctx context.Context) ([]models.Admin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "registeredAt", Value: -1}, {Key: "_id", Value: -1}})
	return findAll[models.Admin](ctx, s.db.Collection(adminsCollection), opts)
}

func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return findOne[models.Admin](ctx, s.db.Collection(adminsCollection), bson.M{"email": email})
}
