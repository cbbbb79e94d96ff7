package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cm-rentals/property-map/geo"
	"github.com/cm-rentals/property-map/models"
	"github.com/cm-rentals/property-map/store"
)

// listingCacheTTL matches the five-minute data TTL the map view tolerates.
const listingCacheTTL = 5 * time.Minute

// CreateListing extracts coordinates from the pasted Google Maps URL,
// validates the listing, and persists it. A listing never reaches the
// store without both coordinates present.
func CreateListing(st store.Store, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var listing models.Listing
		if err := json.NewDecoder(r.Body).Decode(&listing); err != nil {
			log.Printf("Invalid request body: %v", err)
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		point, err := geo.ExtractCoordinates(listing.GoogleMapsURL)
		if err != nil {
			log.Printf("Coordinate extraction failed for %q: %v", listing.GoogleMapsURL, err)
			http.Error(w, "Could not extract coordinates from this URL", http.StatusUnprocessableEntity)
			return
		}
		listing.ID = ""
		listing.Latitude = point.Lat
		listing.Longitude = point.Lon

		if listing.DateAdded == "" {
			listing.DateAdded = time.Now().Format(models.DateLayout)
		}

		if err := listing.Validate(); err != nil {
			log.Printf("Listing validation failed: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := st.CreateListing(r.Context(), &listing); err != nil {
			log.Printf("Insert failed: %v", err)
			http.Error(w, "Failed to save listing", http.StatusInternalServerError)
			return
		}

		if redisClient != nil {
			go func() {
				deleteListingCache(redisClient)
			}()
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(listing)
	}
}

// GetAllListings returns every stored listing, optionally narrowed by
// min_price, max_price, and status query parameters. Responses are served
// from the Redis cache when one is configured.
func GetAllListings(st store.Store, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		cacheKey := generateCacheKey(query)

		if redisClient != nil {
			cachedData, err := redisClient.Get(r.Context(), cacheKey).Result()
			if err == nil {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(cachedData))
				return
			}
			if err != redis.Nil {
				log.Printf("Redis GET error for key %s: %v", cacheKey, err)
			}
		}

		filter, err := parseFilter(query)
		if err != nil {
			log.Printf("Invalid listing filter: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		listings, err := st.ListListings(r.Context(), filter)
		if err != nil {
			log.Printf("Error fetching listings: %v", err)
			http.Error(w, "Error fetching listings", http.StatusInternalServerError)
			return
		}

		resultBytes, err := json.Marshal(listings)
		if err != nil {
			log.Printf("Failed to serialize listings: %v", err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}

		if redisClient != nil {
			if err := redisClient.Set(r.Context(), cacheKey, resultBytes, listingCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

// GetDefaultLocation returns the optional singleton reference point.
// Absence is a normal outcome and maps to 204, not an error.
func GetDefaultLocation(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc, err := st.DefaultLocation(r.Context())
		if err != nil {
			log.Printf("Error fetching default location: %v", err)
			http.Error(w, "Error fetching default location", http.StatusInternalServerError)
			return
		}

		if loc == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loc)
	}
}

func parseFilter(query url.Values) (store.Filter, error) {
	var f store.Filter

	if v := query.Get("min_price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("min_price must be a non-negative integer")
		}
		f.MinPrice = &n
	}

	if v := query.Get("max_price"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, fmt.Errorf("max_price must be a non-negative integer")
		}
		f.MaxPrice = &n
	}

	if v := query.Get("status"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("status must be an integer")
		}
		s := models.Status(n)
		if !s.IsValid() {
			return f, fmt.Errorf("unknown status %q", v)
		}
		f.Status = &s
	}

	return f, nil
}

func generateCacheKey(queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return "listings:" + hex.EncodeToString(sum[:])
}

func deleteListingCache(redisClient *redis.Client) {
	ctx := context.Background()
	const scanPattern = "listings:*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = redisClient.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern '%s': %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := redisClient.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, execErr := pipe.Exec(ctx); execErr != nil {
		log.Printf("Error deleting %d listing cache keys: %v", len(keysToDelete), execErr)
	} else {
		log.Printf("Listing cache invalidated, deleted %d keys", len(keysToDelete))
	}
}
