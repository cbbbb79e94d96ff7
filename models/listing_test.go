package models_test

import (
	"testing"

	"github.com/cm-rentals/property-map/models"
)

func intPtr(n int) *int { return &n }

func validListing() models.Listing {
	return models.Listing{
		Title:         "Room near Nimman",
		GoogleMapsURL: "https://maps.google.com/@18.79,98.98,15z",
		Latitude:      18.79,
		Longitude:     98.98,
		Price:         8000,
		DateAdded:     "2025-09-01",
		Status:        models.StatusFreeRooms,
	}
}

// ── Validate ──────────────────────────────────────────────────────────────

func TestListingValidate_Valid(t *testing.T) {
	l := validListing()
	if err := l.Validate(); err != nil {
		t.Errorf("Validate() returned unexpected error: %v", err)
	}
}

func TestListingValidate_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Listing)
	}{
		{"empty title", func(l *models.Listing) { l.Title = "" }},
		{"whitespace title", func(l *models.Listing) { l.Title = "   " }},
		{"negative price", func(l *models.Listing) { l.Price = -1 }},
		{"negative contract length", func(l *models.Listing) { l.ContractLength = intPtr(-3) }},
		{"latitude out of range", func(l *models.Listing) { l.Latitude = 90.5 }},
		{"longitude out of range", func(l *models.Listing) { l.Longitude = -181 }},
		{"unknown status", func(l *models.Listing) { l.Status = models.Status(7) }},
		{"missing date", func(l *models.Listing) { l.DateAdded = "" }},
		{"malformed date", func(l *models.Listing) { l.DateAdded = "01/09/2025" }},
	}
	for _, c := range cases {
		l := validListing()
		c.mutate(&l)
		if err := l.Validate(); err == nil {
			t.Errorf("%s: Validate() expected error, got nil", c.name)
		}
	}
}

func TestListingValidate_OptionalFields(t *testing.T) {
	l := validListing()
	l.ContractLength = nil
	l.Description = ""
	l.ListingURL = ""
	if err := l.Validate(); err != nil {
		t.Errorf("optional fields left empty should validate, got: %v", err)
	}
}

// ── Status ────────────────────────────────────────────────────────────────

func TestStatusLabelAndColor(t *testing.T) {
	cases := []struct {
		status models.Status
		label  string
		color  string
	}{
		{models.StatusFull, "Full", "red"},
		{models.StatusFreeRooms, "Free rooms", "green"},
		{models.StatusTBD, "TBD", "orange"},
	}
	for _, c := range cases {
		if got := c.status.Label(); got != c.label {
			t.Errorf("Status(%d).Label() = %q, want %q", int(c.status), got, c.label)
		}
		if got := c.status.Color(); got != c.color {
			t.Errorf("Status(%d).Color() = %q, want %q", int(c.status), got, c.color)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []models.Status{models.StatusFull, models.StatusFreeRooms, models.StatusTBD} {
		if !s.IsValid() {
			t.Errorf("Status(%d).IsValid() should be true", int(s))
		}
	}
	for _, s := range []models.Status{-1, 3, 42} {
		if s.IsValid() {
			t.Errorf("Status(%d).IsValid() should be false", int(s))
		}
	}
}
