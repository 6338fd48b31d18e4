package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/woozymasta/coordparse/internal/parser"
)

const earthRadiusMeters = 6371000.0

var (
	// ErrNotPair is returned when a point is built from anything but two values.
	ErrNotPair = errors.New("a point needs exactly two coordinates")

	// ErrOutOfBounds is returned for a latitude or longitude beyond its axis limit.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
)

// Point is a position in signed decimal degrees.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// PointFromCoordinates places a parsed pair on the latitude and longitude axes.
// Values bound to an axis by a cardinal letter go there, otherwise the
// first value is the latitude.
func PointFromCoordinates(coords []parser.Coordinate) (Point, error) {
	if len(coords) != 2 {
		return Point{}, ErrNotPair
	}

	lat, lon := coords[0], coords[1]
	if lat.Axis == parser.AxisLongitude || lon.Axis == parser.AxisLatitude {
		lat, lon = lon, lat
	}

	p := Point{Lat: lat.Value, Lon: lon.Value}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}

	return p, nil
}

// CheckFinite rejects parsed values that overflowed to infinity.
func CheckFinite(coords []parser.Coordinate) error {
	for _, c := range coords {
		if math.IsInf(c.Value, 0) || math.IsNaN(c.Value) {
			return fmt.Errorf("%w: value %v is not a finite number", ErrOutOfBounds, c.Value)
		}
	}

	return nil
}

// Validate checks the latitude and longitude limits.
func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.Abs(p.Lat) > parser.AxisLatitude.Limit() {
		return fmt.Errorf("%w: latitude %v outside -90 to 90", ErrOutOfBounds, p.Lat)
	}
	if math.IsNaN(p.Lon) || math.Abs(p.Lon) > parser.AxisLongitude.Limit() {
		return fmt.Errorf("%w: longitude %v outside -180 to 180", ErrOutOfBounds, p.Lon)
	}

	return nil
}

// Round returns the point with both values rounded to the given decimals.
func (p Point) Round(decimals int) Point {
	return Point{Lat: Round(p.Lat, decimals), Lon: Round(p.Lon, decimals)}
}

// Round rounds v to the given number of decimals.
func Round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	if math.IsInf(v*scale, 0) {
		// too large to carry a fraction anyway
		return v
	}
	return math.Round(v*scale) / scale
}

// FormatDMS renders a value as degrees, minutes and seconds, e.g. 40° 26' 46" N.
// Seconds keep two decimals. Without an axis the sign is kept as a prefix.
// Values beyond 180 degrees in magnitude render as an empty string.
func FormatDMS(value float64, axis parser.Axis) string {
	if math.IsNaN(value) || math.Abs(value) > parser.AxisLongitude.Limit() {
		return ""
	}

	abs := math.Abs(value)
	degrees := math.Floor(abs)
	minutes := math.Floor((abs - degrees) * 60)
	seconds := Round(((abs-degrees)*60-minutes)*60, 2)

	// carry rounding overflow
	if seconds >= 60 {
		seconds -= 60
		minutes++
	}
	if minutes >= 60 {
		minutes -= 60
		degrees++
	}

	text := fmt.Sprintf(`%d° %d' %s"`, int(degrees), int(minutes), strconv.FormatFloat(seconds, 'f', -1, 64))

	switch axis {
	case parser.AxisLatitude:
		if value < 0 {
			return text + " S"
		}
		return text + " N"
	case parser.AxisLongitude:
		if value < 0 {
			return text + " W"
		}
		return text + " E"
	}

	if value < 0 {
		return "-" + text
	}

	return text
}

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// rounding can push h past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	c := 2 * math.Asin(math.Sqrt(h))
	return earthRadiusMeters * c
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
