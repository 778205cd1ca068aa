package kernel

import (
	"errors"
	"time"

	"fulfilment/internal/pkg/errs"
	"fulfilment/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created using the NewGeoPoint constructor
// to ensure coordinate validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a recorded device location with validated coordinates.
// It is an immutable value object; the zero value is invalid and will fail
// validation - use the constructor to create instances.
//
// Orders carry optional GeoPoints for the customer (captured at checkout) and
// the supplier (captured when work starts) so operations staff can verify
// collection and drop-off proximity.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(-26.2041, 28.0473, 12.5, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude   float64
	longitude  float64
	accuracyM  float64
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewGeoPoint creates a new GeoPoint with the specified coordinates.
// Latitude must be within [LatitudeMin..LatitudeMax], longitude within
// [LongitudeMin..LongitudeMax], and accuracy (meters) must be non-negative.
// A zero recordedAt means the capture time is unknown and is accepted.
func NewGeoPoint(latitude, longitude, accuracyM float64, recordedAt time.Time) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setLatitude(latitude),
		p.setLongitude(longitude),
		p.setAccuracy(accuracyM),
	); err != nil {
		return GeoPoint{}, err
	}

	p.recordedAt = recordedAt
	return p, nil
}

// Validate checks if the GeoPoint was properly constructed using a constructor.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 { return p.latitude }

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 { return p.longitude }

// AccuracyM returns the reported accuracy radius in meters.
func (p GeoPoint) AccuracyM() float64 { return p.accuracyM }

// RecordedAt returns when the device reported the location.
// A zero time means the capture time is unknown.
func (p GeoPoint) RecordedAt() time.Time { return p.recordedAt }

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	p.longitude = longitude
	return nil
}

func (p *GeoPoint) setAccuracy(accuracyM float64) error {
	if accuracyM < 0 {
		return errs.NewValueIsOutOfRangeError("accuracyM", accuracyM, 0, "unbounded")
	}
	p.accuracyM = accuracyM
	return nil
}
