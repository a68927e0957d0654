// Package timezone maps geographic coordinates to IANA time zones.
package timezone

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone ids from the lookup table must load on hosts without zoneinfo

	"github.com/bradfitz/latlong"
	"github.com/devskill-org/nfctools/sun"
)

// ZoneLookupError is returned when no zone covers a coordinate, e.g. open ocean
type ZoneLookupError struct {
	Latitude  float64
	Longitude float64
}

func (e *ZoneLookupError) Error() string {
	return fmt.Sprintf("no timezone found for coordinates %g, %g", e.Latitude, e.Longitude)
}

// Resolver maps a coordinate to an IANA zone id such as "America/Los_Angeles"
type Resolver interface {
	ZoneName(latitude, longitude float64) (string, error)
}

// LatLongResolver resolves zones from the table embedded in github.com/bradfitz/latlong
type LatLongResolver struct{}

// NewLatLongResolver creates a resolver backed by the embedded zone table
func NewLatLongResolver() *LatLongResolver {
	return &LatLongResolver{}
}

// ZoneName implements Resolver
func (LatLongResolver) ZoneName(latitude, longitude float64) (string, error) {
	name := latlong.LookupZoneName(latitude, longitude)
	if name == "" {
		return "", &ZoneLookupError{Latitude: latitude, Longitude: longitude}
	}
	return name, nil
}

// Fixed always resolves to the same zone id
type Fixed string

// ZoneName implements Resolver
func (f Fixed) ZoneName(latitude, longitude float64) (string, error) {
	name := strings.TrimSpace(string(f))
	if name == "" {
		return "", &ZoneLookupError{Latitude: latitude, Longitude: longitude}
	}
	return name, nil
}

// Lookup validates the coordinate, resolves its zone id and loads the zone.
func Lookup(r Resolver, latitude, longitude float64) (*time.Location, string, error) {
	loc := sun.Location{Latitude: latitude, Longitude: longitude}
	if err := loc.Validate(); err != nil {
		return nil, "", err
	}

	name, err := r.ZoneName(latitude, longitude)
	if err != nil {
		return nil, "", err
	}

	zone, err := time.LoadLocation(name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	return zone, name, nil
}
