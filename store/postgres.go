package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cm-rentals/property-map/config"
	"github.com/cm-rentals/property-map/models"
)

const listingColumns = "id::text, title, listing_url, google_maps_url, latitude, longitude, " +
	"price, contract_length, has_a_desk, to_char(date_added, 'YYYY-MM-DD') AS date_added, " +
	"description, status"

// PostgresStore persists listings in a hosted Postgres database.
type PostgresStore struct {
	pool            *pgxpool.Pool
	listingsTable   string
	defaultLocTable string
}

// OpenPostgres creates and verifies a pgxpool connection.
func OpenPostgres(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	dsn, err := postgresDSN(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return &PostgresStore{
		pool:            pool,
		listingsTable:   cfg.ListingsTable,
		defaultLocTable: cfg.DefaultLocationTable,
	}, nil
}

// postgresDSN injects the access credential into the endpoint URL.
func postgresDSN(cfg *config.Config) (string, error) {
	u, err := url.Parse(cfg.StoreURL)
	if err != nil {
		return "", fmt.Errorf("invalid STORE_URL: %w", err)
	}

	user := cfg.StoreUser
	if user == "" && u.User != nil {
		user = u.User.Username()
	}
	if user == "" {
		user = "postgres"
	}
	u.User = url.UserPassword(user, cfg.StoreKey)

	return u.String(), nil
}

func (s *PostgresStore) CreateListing(ctx context.Context, l *models.Listing) error {
	q := fmt.Sprintf(`INSERT INTO %s
		(title, listing_url, google_maps_url, latitude, longitude, price, contract_length, has_a_desk, date_added, description, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::date, $10, $11)
		RETURNING id::text`, s.listingsTable)

	err := s.pool.QueryRow(ctx, q,
		l.Title, l.ListingURL, l.GoogleMapsURL, l.Latitude, l.Longitude,
		l.Price, l.ContractLength, l.HasADesk, l.DateAdded, l.Description, int(l.Status),
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListListings(ctx context.Context, f Filter) ([]models.Listing, error) {
	q, args := buildListQuery(s.listingsTable, f)

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		var (
			l      models.Listing
			status int
		)
		err := rows.Scan(
			&l.ID, &l.Title, &l.ListingURL, &l.GoogleMapsURL, &l.Latitude, &l.Longitude,
			&l.Price, &l.ContractLength, &l.HasADesk, &l.DateAdded, &l.Description, &status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		l.Status = models.Status(status)
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	return listings, nil
}

// buildListQuery assembles the filtered SELECT with positional arguments.
func buildListQuery(table string, f Filter) (string, []any) {
	q := fmt.Sprintf("SELECT %s FROM %s", listingColumns, table)

	var (
		conds []string
		args  []any
	)
	if f.MinPrice != nil {
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)+1))
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)+1))
		args = append(args, *f.MaxPrice)
	}
	if f.Status != nil {
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, int(*f.Status))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}

	q += " ORDER BY id ASC"
	return q, args
}

func (s *PostgresStore) DefaultLocation(ctx context.Context) (*models.DefaultLocation, error) {
	q := fmt.Sprintf("SELECT title, latitude, longitude, COALESCE(icon, '') FROM %s LIMIT 1", s.defaultLocTable)

	var loc models.DefaultLocation
	err := s.pool.QueryRow(ctx, q).Scan(&loc.Title, &loc.Latitude, &loc.Longitude, &loc.Icon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query default location: %w", err)
	}

	return &loc, nil
}

func (s *PostgresStore) Close(ctx context.Context) error {
	s.pool.Close()
	return nil
}
