// Package mapview turns the catalog's derived view, the user location,
// a highlight selection and the theme into a consistent marker and
// viewport state on an abstract map surface, and feeds user
// interactions back to the caller.
package mapview

import (
	"surtigo/internal/brands"
	"surtigo/internal/geo"
	"surtigo/internal/theme"
)

// MarkerStyle encodes the price-aware styling of a station marker.
type MarkerStyle int

const (
	// StyleNeutral is the default marker.
	StyleNeutral MarkerStyle = iota
	// StyleCheap marks stations priced below the current average.
	StyleCheap
	// StyleTop marks the three lowest-priced stations.
	StyleTop
)

// PriceRow is one line of the compact all-prices table in a popup.
type PriceRow struct {
	Label string
	Value string
}

// PopupSpec is everything the surface needs to render a station popup.
type PopupSpec struct {
	Rank         int
	Top          bool
	Cheap        bool
	Name         string
	Locality     string
	Province     string
	Brand        string
	BrandColor   brands.Color
	FuelLabel    string
	PriceText    string
	DistanceText string
	Schedule     string
	OtherPrices  []PriceRow
}

// MarkerSpec describes one station marker.
type MarkerSpec struct {
	StationID int
	Point     geo.Point
	Style     MarkerStyle
	Rank      int
	LogoURL   string
	Popup     PopupSpec
}

// Bounds is a geographic bounding box.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// Contains reports whether p lies inside the box.
func (b Bounds) Contains(p geo.Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

func boundsOf(points []geo.Point) Bounds {
	b := Bounds{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		if p.Lat < b.MinLat {
			b.MinLat = p.Lat
		}
		if p.Lat > b.MaxLat {
			b.MaxLat = p.Lat
		}
		if p.Lon < b.MinLon {
			b.MinLon = p.Lon
		}
		if p.Lon > b.MaxLon {
			b.MaxLon = p.Lon
		}
	}
	return b
}

// Surface abstracts the underlying map widget. Every mutating call
// replaces the corresponding layer wholesale, so render steps stay
// idempotent. Implementations must tolerate calls in any order.
type Surface interface {
	// Ready reports whether the widget can accept draw calls yet.
	Ready() bool

	// SetStationMarkers replaces the whole station marker layer.
	SetStationMarkers(markers []MarkerSpec)
	// SetUserMarker places (or removes, when nil) the user dot.
	SetUserMarker(p *geo.Point)
	// SetSearchCenterMarker places (or removes, when nil) the
	// search-center overlay.
	SetSearchCenterMarker(p *geo.Point)
	// SetHighlight draws (or removes, when nil) the pulsing ring.
	SetHighlight(p *geo.Point)

	// FitBounds fits the viewport to a bounding box with padding,
	// never zooming past maxZoom.
	FitBounds(b Bounds, padding int, maxZoom int)
	// SetView centers the viewport at a fixed zoom.
	SetView(p geo.Point, zoom int)
	// PanTo pans without changing zoom.
	PanTo(p geo.Point)
	// VisibleBounds returns the currently visible box.
	VisibleBounds() Bounds

	// SetBasemap swaps the tile layer variant.
	SetBasemap(t theme.Resolved)
}

// CARTO basemap variants, one per resolved theme.
const (
	LightTilesURL = "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}{r}.png"
	DarkTilesURL  = "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png"
)

// TilesURL returns the tile URL template for a resolved theme.
func TilesURL(t theme.Resolved) string {
	if t == theme.Dark {
		return DarkTilesURL
	}
	return LightTilesURL
}
