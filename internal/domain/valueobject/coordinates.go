package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	maxLatitude  = decimal.NewFromInt(90)
	maxLongitude = decimal.NewFromInt(180)
)

// Coordinates is a latitude/longitude pair kept as exact decimals so that
// stored and rendered values never drift through float rounding.
type Coordinates struct {
	latitude  decimal.Decimal
	longitude decimal.Decimal
}

// NewCoordinates validates and builds a Coordinates value.
func NewCoordinates(lat, lng decimal.Decimal) (Coordinates, error) {
	if lat.Abs().GreaterThan(maxLatitude) {
		return Coordinates{}, fmt.Errorf("latitude %s out of range [-90, 90]", lat)
	}
	if lng.Abs().GreaterThan(maxLongitude) {
		return Coordinates{}, fmt.Errorf("longitude %s out of range [-180, 180]", lng)
	}
	return Coordinates{latitude: lat, longitude: lng}, nil
}

// ParseCoordinates parses decimal strings such as "51.5072" and "-0.1276".
func ParseCoordinates(lat, lng string) (Coordinates, error) {
	la, err := decimal.NewFromString(lat)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude %q: %w", lat, err)
	}
	lo, err := decimal.NewFromString(lng)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude %q: %w", lng, err)
	}
	return NewCoordinates(la, lo)
}

func (c Coordinates) Latitude() decimal.Decimal  { return c.latitude }
func (c Coordinates) Longitude() decimal.Decimal { return c.longitude }

// MapsURL renders a Google Maps link for the point.
func (c Coordinates) MapsURL() string {
	return fmt.Sprintf("https://maps.google.com/?q=%s,%s", c.latitude.String(), c.longitude.String())
}
