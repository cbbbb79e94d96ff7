// Package geo extracts geographic coordinates from pasted map-service URLs.
package geo

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// Point is a geographic coordinate in decimal degrees (WGS 84).
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

var (
	// ErrNoCoordinates is returned when no recognized coordinate pattern
	// appears anywhere in the input.
	ErrNoCoordinates = errors.New("no coordinates found in URL")

	// ErrInvalidCoordinates is returned when a pattern matched but the
	// values were unparseable or outside the valid latitude/longitude
	// ranges.
	ErrInvalidCoordinates = errors.New("invalid coordinates in URL")
)

// The !3d<lat>!4d<lon> pair encodes an explicitly pinned place marker.
// @<lat>,<lon> is only the map viewport center, so it is a fallback.
var (
	pinPattern      = regexp.MustCompile(`!3d(-?[0-9.]+)!4d(-?[0-9.]+)`)
	viewportPattern = regexp.MustCompile(`@(-?[0-9.]+),(-?[0-9.]+)`)
)

// ExtractCoordinates parses a Google Maps URL and returns the coordinate
// pair it encodes. The pinned-marker pattern takes priority over the
// viewport pattern; if a pattern occurs more than once, the first
// occurrence wins. When the pinned pattern is present but carries an
// unparseable or out-of-range value, extraction fails outright rather
// than falling back to the viewport center, which may point somewhere
// else entirely.
func ExtractCoordinates(rawURL string) (Point, error) {
	if m := pinPattern.FindStringSubmatch(rawURL); m != nil {
		return parsePair(m[1], m[2])
	}
	if m := viewportPattern.FindStringSubmatch(rawURL); m != nil {
		return parsePair(m[1], m[2])
	}
	return Point{}, ErrNoCoordinates
}

func parsePair(latStr, lonStr string) (Point, error) {
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: bad latitude %q", ErrInvalidCoordinates, latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return Point{}, fmt.Errorf("%w: bad longitude %q", ErrInvalidCoordinates, lonStr)
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return Point{}, fmt.Errorf("%w: (%v, %v) out of range", ErrInvalidCoordinates, lat, lon)
	}
	return Point{Lat: lat, Lon: lon}, nil
}
