// Package geo provides WGS84 points, great-circle distances and a
// best-effort locator on top of a host position sensor.
package geo

import (
	"math"

	"github.com/tkrajina/gpxgo/gpx"
)

const metersPerKm = 1000.0

// Point is a WGS84 coordinate pair in degrees.
type Point struct {
	Lat float64
	Lon float64
}

// DistanceKm returns the great-circle (haversine) distance between two
// points in kilometers, rounded to 2 decimals. Symmetric, and zero for
// equal points.
func DistanceKm(a, b Point) float64 {
	meters := gpx.Distance2D(a.Lat, a.Lon, b.Lat, b.Lon, true)
	return math.Round(meters/metersPerKm*100) / 100
}
