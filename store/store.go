// Package store persists listings to the hosted backing store. The
// Store interface keeps the rest of the service independent of the
// storage technology; Postgres and Mongo backends are provided.
package store

import (
	"context"
	"fmt"

	"github.com/cm-rentals/property-map/config"
	"github.com/cm-rentals/property-map/models"
)

// Filter narrows ListListings results. The zero value matches everything.
type Filter struct {
	MinPrice *int
	MaxPrice *int
	Status   *models.Status
}

// Store is the persistence boundary for listings and the default location.
type Store interface {
	// CreateListing inserts one listing and fills in its assigned ID.
	// The write is atomic: the listing is either fully recorded or not
	// recorded at all.
	CreateListing(ctx context.Context, l *models.Listing) error

	// ListListings returns all stored listings matching the filter, in
	// insertion order. An empty store yields an empty slice, not an error.
	ListListings(ctx context.Context, f Filter) ([]models.Listing, error)

	// DefaultLocation returns the singleton reference point, or (nil, nil)
	// when none is configured.
	DefaultLocation(ctx context.Context) (*models.DefaultLocation, error)

	Close(ctx context.Context) error
}

// Open connects to the store selected by the configuration.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg)
	case config.DriverMongo:
		return OpenMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
