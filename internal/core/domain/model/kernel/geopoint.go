package kernel

import "transtrack/internal/pkg/errs"

// Geographic coordinate bounds in decimal degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrGeoPointIsNotConstructed is returned when validating a zero-value
// GeoPoint that was not created through NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError("GeoPoint must be created via NewGeoPoint")

// GeoPoint is a value object holding a WGS84 coordinate pair. Checkpoint
// positions (origin, waypoints, destination) are expressed as GeoPoints.
//
// The zero value is invalid; construct through NewGeoPoint, which enforces
// latitude in [-90, 90] and longitude in [-180, 180]. GeoPoint is immutable
// and safe for concurrent use.
type GeoPoint struct {
	latitude  float64
	longitude float64

	isConstructed bool
}

// NewGeoPoint creates a GeoPoint after range-checking both coordinates.
// Out-of-range values yield a ValueIsOutOfRangeError naming the offending
// coordinate.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	if longitude < MinLongitude || longitude > MaxLongitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	return GeoPoint{
		latitude:      latitude,
		longitude:     longitude,
		isConstructed: true,
	}, nil
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual reports whether two points hold identical coordinates.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// Validate returns ErrGeoPointIsNotConstructed for a zero-value point,
// nil otherwise.
func (p GeoPoint) Validate() error {
	if !p.isConstructed {
		return ErrGeoPointIsNotConstructed
	}
	return nil
}
