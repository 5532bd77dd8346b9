// Package mongostore is the MongoDB entity store backend. Each entity type lives in
// its own collection and ids are ObjectID hex strings.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alextreichler/carrental/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	carsCollection     = "cars"
	storesCollection   = "stores"
	bookingsCollection = "bookings"
	adminsCollection   = "admins"
)

// Config holds the connection settings for the MongoDB backend.
type Config struct {
	URI            string
	Database       string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Store = (*Store)(nil)

// Connect opens a pooled client, verifies it with a ping and makes sure the
// indexes exist.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(cfg.ConnectTimeout)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	s := &Store{client: client, db: client.Database(cfg.Database)}
	if err := s.EnsureIndexes(ctx); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	slog.Info("MongoDB connected", "database", cfg.Database)
	return s, nil
}

// EnsureIndexes creates the unique email index on admins and the createdAt
// index used to list bookings.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(adminsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create admins email index: %w", err)
	}
	_, err = s.db.Collection(bookingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create bookings createdAt index: %w", err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) Counts(ctx context.Context) (*store.Counts, error) {
	c := &store.Counts{}
	targets := []struct {
		coll string
		dst  *int
	}{
		{carsCollection, &c.Cars},
		{storesCollection, &c.Locations},
		{bookingsCollection, &c.Bookings},
		{adminsCollection, &c.Admins},
	}
	for _, t := range targets {
		n, err := s.db.Collection(t.coll).CountDocuments(ctx, bson.D{})
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", t.coll, err)
		}
		*t.dst = int(n)
	}
	return c, nil
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// stamp normalises a timestamp to what BSON can round-trip, defaulting to now.
func stamp(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Millisecond)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, bson.D{}, opts...)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func findOne[T any](ctx context.Context, coll *mongo.Collection, filter bson.M) (*T, error) {
	var v T
	err := coll.FindOne(ctx, filter).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// update loads the document, applies fn, validates and replaces it.
func update[T any](ctx context.Context, coll *mongo.Collection, id string, fn func(*T) error, setID func(*T)) (*T, error) {
	v, err := findOne[T](ctx, coll, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if err := fn(v); err != nil {
		return nil, err
	}
	setID(v)
	if err := store.Validate(v); err != nil {
		return nil, err
	}
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": id}, v)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, store.ErrNotFound
	}
	return v, nil
}

func deleteOne[T any](ctx context.Context, coll *mongo.Collection, id string) (*T, error) {
	var v T
	err := coll.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
