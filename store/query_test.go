package store

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/cm-rentals/property-map/config"
	"github.com/cm-rentals/property-map/models"
)

func intPtr(n int) *int { return &n }

// ── Postgres query building ───────────────────────────────────────────────

func TestBuildListQuery_NoFilter(t *testing.T) {
	q, args := buildListQuery("properties", Filter{})
	if strings.Contains(q, "WHERE") {
		t.Errorf("zero filter should produce no WHERE clause, got %q", q)
	}
	if !strings.Contains(q, "FROM properties") {
		t.Errorf("query should target the configured table, got %q", q)
	}
	if !strings.HasSuffix(q, "ORDER BY id ASC") {
		t.Errorf("query should keep insertion order, got %q", q)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	status := models.StatusFreeRooms
	q, args := buildListQuery("properties", Filter{
		MinPrice: intPtr(4000),
		MaxPrice: intPtr(12000),
		Status:   &status,
	})

	for _, want := range []string{"price >= $1", "price <= $2", "status = $3"} {
		if !strings.Contains(q, want) {
			t.Errorf("query missing %q: %q", want, q)
		}
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	if args[0] != 4000 || args[1] != 12000 || args[2] != int(models.StatusFreeRooms) {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildListQuery_SingleFilter(t *testing.T) {
	q, args := buildListQuery("properties", Filter{MaxPrice: intPtr(9000)})
	if !strings.Contains(q, "WHERE price <= $1") {
		t.Errorf("expected single max price condition, got %q", q)
	}
	if len(args) != 1 || args[0] != 9000 {
		t.Errorf("unexpected args: %v", args)
	}
}

// ── Postgres DSN assembly ─────────────────────────────────────────────────

func TestPostgresDSN_InjectsCredential(t *testing.T) {
	dsn, err := postgresDSN(&config.Config{
		StoreURL: "postgres://db.example.supabase.co:5432/postgres",
		StoreKey: "s3cret",
	})
	if err != nil {
		t.Fatalf("postgresDSN returned unexpected error: %v", err)
	}
	if !strings.Contains(dsn, ":s3cret@") {
		t.Errorf("credential not injected into DSN: %q", dsn)
	}
	if !strings.HasPrefix(dsn, "postgres://postgres:") {
		t.Errorf("expected default postgres user, got %q", dsn)
	}
}

func TestPostgresDSN_ExplicitUser(t *testing.T) {
	dsn, err := postgresDSN(&config.Config{
		StoreURL:  "postgres://db.example.supabase.co:5432/postgres",
		StoreUser: "service_role",
		StoreKey:  "s3cret",
	})
	if err != nil {
		t.Fatalf("postgresDSN returned unexpected error: %v", err)
	}
	if !strings.HasPrefix(dsn, "postgres://service_role:s3cret@") {
		t.Errorf("explicit user not honored: %q", dsn)
	}
}

// ── Mongo filter building ─────────────────────────────────────────────────

func TestListFilter_Empty(t *testing.T) {
	filter := listFilter(Filter{})
	if len(filter) != 0 {
		t.Errorf("zero filter should produce an empty document, got %v", filter)
	}
}

func TestListFilter_PriceRangeAndStatus(t *testing.T) {
	status := models.StatusTBD
	filter := listFilter(Filter{
		MinPrice: intPtr(5000),
		MaxPrice: intPtr(10000),
		Status:   &status,
	})

	price, ok := filter["price"].(bson.M)
	if !ok {
		t.Fatalf("expected a price sub-document, got %v", filter["price"])
	}
	if price["$gte"] != 5000 || price["$lte"] != 10000 {
		t.Errorf("unexpected price bounds: %v", price)
	}
	if filter["status"] != int(models.StatusTBD) {
		t.Errorf("unexpected status: %v", filter["status"])
	}
}
