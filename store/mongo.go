package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cm-rentals/property-map/config"
	"github.com/cm-rentals/property-map/models"
)

// MongoStore persists listings in a hosted MongoDB database. Kept as an
// alternative backend behind the same Store interface.
type MongoStore struct {
	client     *mongo.Client
	listings   *mongo.Collection
	defaultLoc *mongo.Collection
}

// OpenMongo connects, pings, and binds the configured collections.
func OpenMongo(ctx context.Context, cfg *config.Config) (*MongoStore, error) {
	opts := options.Client().ApplyURI(cfg.StoreURL)
	if cfg.StoreUser != "" {
		opts = opts.SetAuth(options.Credential{
			Username: cfg.StoreUser,
			Password: cfg.StoreKey,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("error connecting to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	db := client.Database(cfg.StoreDB)
	return &MongoStore{
		client:     client,
		listings:   db.Collection(cfg.ListingsTable),
		defaultLoc: db.Collection(cfg.DefaultLocationTable),
	}, nil
}

func (s *MongoStore) CreateListing(ctx context.Context, l *models.Listing) error {
	l.ID = primitive.NewObjectID().Hex()
	if _, err := s.listings.InsertOne(ctx, l); err != nil {
		l.ID = ""
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (s *MongoStore) ListListings(ctx context.Context, f Filter) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := s.listings.Find(ctx, listFilter(f), opts)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, fmt.Errorf("decode listings: %w", err)
	}

	return listings, nil
}

// listFilter translates a Filter into a Mongo query document.
func listFilter(f Filter) bson.M {
	filter := bson.M{}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if f.Status != nil {
		filter["status"] = int(*f.Status)
	}

	return filter
}

func (s *MongoStore) DefaultLocation(ctx context.Context) (*models.DefaultLocation, error) {
	var loc models.DefaultLocation
	err := s.defaultLoc.FindOne(ctx, bson.M{}).Decode(&loc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query default location: %w", err)
	}

	return &loc, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
