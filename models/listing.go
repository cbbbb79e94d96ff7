package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire and storage format for listing dates.
const DateLayout = "2006-01-02"

// Status is the availability of a listing, as last confirmed with the
// landlord.
type Status int

const (
	StatusFull      Status = 0
	StatusFreeRooms Status = 1
	StatusTBD       Status = 2
)

func (s Status) IsValid() bool {
	return s >= StatusFull && s <= StatusTBD
}

// Label returns a human-readable label for the status.
func (s Status) Label() string {
	switch s {
	case StatusFull:
		return "Full"
	case StatusFreeRooms:
		return "Free rooms"
	case StatusTBD:
		return "TBD"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Color returns the map marker color used by map front ends.
func (s Status) Color() string {
	switch s {
	case StatusFull:
		return "red"
	case StatusFreeRooms:
		return "green"
	case StatusTBD:
		return "orange"
	default:
		return "gray"
	}
}

// Listing is one candidate rental property. Coordinates are filled in by
// the server from the pasted Google Maps URL, never by the client.
type Listing struct {
	ID             string  `bson:"_id,omitempty" json:"id,omitempty"`
	Title          string  `bson:"title" json:"title"`
	ListingURL     string  `bson:"listing_url" json:"listing_url,omitempty"`
	GoogleMapsURL  string  `bson:"google_maps_url" json:"google_maps_url,omitempty"`
	Latitude       float64 `bson:"latitude" json:"latitude"`
	Longitude      float64 `bson:"longitude" json:"longitude"`
	Price          int     `bson:"price" json:"price"`
	ContractLength *int    `bson:"contract_length,omitempty" json:"contract_length,omitempty"`
	HasADesk       bool    `bson:"has_a_desk" json:"has_a_desk"`
	DateAdded      string  `bson:"date_added" json:"date_added"`
	Description    string  `bson:"description" json:"description,omitempty"`
	Status         Status  `bson:"status" json:"status"`
}

// Validate reports the first violated field constraint.
func (l *Listing) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if l.Price < 0 {
		return fmt.Errorf("price must be non-negative")
	}
	if l.ContractLength != nil && *l.ContractLength < 0 {
		return fmt.Errorf("contract length must be non-negative")
	}
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", l.Longitude)
	}
	if !l.Status.IsValid() {
		return fmt.Errorf("unknown status %d", int(l.Status))
	}
	if l.DateAdded == "" {
		return fmt.Errorf("date_added is required")
	}
	if _, err := time.Parse(DateLayout, l.DateAdded); err != nil {
		return fmt.Errorf("date_added must be formatted as %s", DateLayout)
	}
	return nil
}

// DefaultLocation is the optional singleton reference point shown with a
// distinct marker on the map. It is maintained directly in the store by an
// operator; this service only reads it.
type DefaultLocation struct {
	Title     string  `bson:"title" json:"title"`
	Latitude  float64 `bson:"latitude" json:"latitude"`
	Longitude float64 `bson:"longitude" json:"longitude"`
	Icon      string  `bson:"icon,omitempty" json:"icon,omitempty"`
}
