package mapview

import (
	"log/slog"
	"math"
	"sync"

	"surtigo/internal/brands"
	"surtigo/internal/catalog"
	"surtigo/internal/geo"
	"surtigo/internal/theme"
	"surtigo/pkg/api"
)

const (
	topRankCount = 3

	fitPadding = 40
	fitMaxZoom = 14

	singlePointZoom = 13

	// A search-center marker stacked on the user's own position is
	// redundant; ~0.001 degrees is about 100 m.
	centerOverlapDegrees = 0.001
)

// Presenter drives a Surface from four independent inputs: the derived
// station view, the user location, the highlighted station and the
// theme. Each setter runs one isolated, idempotent render step; all
// steps no-op until the surface is ready.
type Presenter struct {
	surface Surface
	log     *slog.Logger

	mu          sync.Mutex
	view        catalog.View
	userLoc     *geo.Point
	center      *geo.Point
	highlighted *api.Station
	resolved    theme.Resolved

	onStationSelected func(api.Station)
	onRelocate        func(geo.Point)

	press pressTracker
}

// New creates a presenter over a surface. The initial theme is dark.
func New(surface Surface, logger *slog.Logger) *Presenter {
	p := &Presenter{
		surface:  surface,
		log:      logger,
		resolved: theme.Dark,
	}
	p.press.threshold = longPressDuration
	p.press.fire = p.emitRelocate
	return p
}

// SetOnStationSelected registers the marker-click event sink.
func (p *Presenter) SetOnStationSelected(fn func(api.Station)) {
	p.mu.Lock()
	p.onStationSelected = fn
	p.mu.Unlock()
}

// SetOnRelocate registers the relocate-search-center event sink.
func (p *Presenter) SetOnRelocate(fn func(geo.Point)) {
	p.mu.Lock()
	p.onRelocate = fn
	p.mu.Unlock()
}

// SetStations applies a new derived view and rebuilds markers and the
// viewport.
func (p *Presenter) SetStations(view catalog.View) {
	p.mu.Lock()
	p.view = view
	p.mu.Unlock()

	p.renderMarkers()
	p.fitViewport()
}

// SetUserLocation applies a new (or absent) user location.
func (p *Presenter) SetUserLocation(loc *geo.Point) {
	p.mu.Lock()
	p.userLoc = copyPoint(loc)
	p.mu.Unlock()

	p.renderMarkers()
	p.fitViewport()
	p.renderSearchCenter()
}

// SetSearchCenter applies a new (or absent) search center.
func (p *Presenter) SetSearchCenter(center *geo.Point) {
	p.mu.Lock()
	p.center = copyPoint(center)
	p.mu.Unlock()

	p.renderSearchCenter()
}

// SetHighlight applies a new (or absent) highlighted station.
func (p *Presenter) SetHighlight(station *api.Station) {
	p.mu.Lock()
	p.highlighted = station
	p.mu.Unlock()

	p.renderHighlight()
}

// SetTheme applies a resolved theme, swapping the basemap only.
func (p *Presenter) SetTheme(t theme.Resolved) {
	p.mu.Lock()
	p.resolved = t
	p.mu.Unlock()

	p.applyBasemap()
}

// HandleStationClick emits station selection for a clicked marker.
func (p *Presenter) HandleStationClick(stationID int) {
	p.mu.Lock()
	var clicked *api.Station
	for i := range p.view.Stations {
		if p.view.Stations[i].ID == stationID {
			s := p.view.Stations[i]
			clicked = &s
			break
		}
	}
	fn := p.onStationSelected
	p.mu.Unlock()

	if clicked != nil && fn != nil {
		fn(*clicked)
	}
}

// HandleDoubleClick emits a relocate event for the clicked point.
func (p *Presenter) HandleDoubleClick(point geo.Point) {
	p.emitRelocate(point)
}

func (p *Presenter) emitRelocate(point geo.Point) {
	p.mu.Lock()
	fn := p.onRelocate
	p.mu.Unlock()
	if fn != nil {
		fn(point)
	}
}

// Close releases pending timers. The presenter must not be used after.
func (p *Presenter) Close() {
	p.press.disarm()
}

func (p *Presenter) renderMarkers() {
	if !p.surface.Ready() {
		return
	}

	p.mu.Lock()
	view := p.view
	userLoc := copyPoint(p.userLoc)
	p.mu.Unlock()

	p.surface.SetUserMarker(userLoc)

	markers := make([]MarkerSpec, 0, len(view.Stations))
	for i := range view.Stations {
		s := &view.Stations[i]
		price := catalog.PriceOf(s, view.Kind)
		rank := i + 1
		top := rank <= topRankCount && price != nil
		cheap := price != nil && view.AveragePrice > 0 && *price < view.AveragePrice

		style := StyleNeutral
		switch {
		case top:
			style = StyleTop
		case cheap:
			style = StyleCheap
		}

		markers = append(markers, MarkerSpec{
			StationID: s.ID,
			Point:     geo.Point{Lat: s.Lat, Lon: s.Lon},
			Style:     style,
			Rank:      rank,
			LogoURL:   brands.LogoURL(s.Brand),
			Popup:     buildPopup(s, view.Kind, rank, top, cheap),
		})
	}
	p.surface.SetStationMarkers(markers)
	p.log.Debug("marker layer rebuilt", "stations", len(markers), "fuel", view.Kind)
}

func (p *Presenter) fitViewport() {
	if !p.surface.Ready() {
		return
	}

	p.mu.Lock()
	view := p.view
	userLoc := copyPoint(p.userLoc)
	center := copyPoint(p.center)
	p.mu.Unlock()

	var points []geo.Point
	for i := range view.Stations {
		s := &view.Stations[i]
		if s.Lat != 0 && s.Lon != 0 {
			points = append(points, geo.Point{Lat: s.Lat, Lon: s.Lon})
		}
	}
	if userLoc != nil {
		points = append(points, *userLoc)
	}
	if center != nil {
		points = append(points, *center)
	}

	switch {
	case len(points) > 1:
		p.surface.FitBounds(boundsOf(points), fitPadding, fitMaxZoom)
	case len(points) == 1:
		p.surface.SetView(points[0], singlePointZoom)
	}
}

func (p *Presenter) renderHighlight() {
	if !p.surface.Ready() {
		return
	}

	p.mu.Lock()
	station := p.highlighted
	p.mu.Unlock()

	if station == nil {
		p.surface.SetHighlight(nil)
		return
	}

	point := geo.Point{Lat: station.Lat, Lon: station.Lon}
	p.surface.SetHighlight(&point)

	if !p.surface.VisibleBounds().Contains(point) {
		p.surface.PanTo(point)
	}
}

func (p *Presenter) renderSearchCenter() {
	if !p.surface.Ready() {
		return
	}

	p.mu.Lock()
	center := copyPoint(p.center)
	userLoc := copyPoint(p.userLoc)
	p.mu.Unlock()

	if center == nil || stacked(*center, userLoc) {
		p.surface.SetSearchCenterMarker(nil)
		return
	}
	p.surface.SetSearchCenterMarker(center)
}

func stacked(center geo.Point, userLoc *geo.Point) bool {
	if userLoc == nil {
		return false
	}
	return math.Abs(center.Lat-userLoc.Lat) <= centerOverlapDegrees &&
		math.Abs(center.Lon-userLoc.Lon) <= centerOverlapDegrees
}

func (p *Presenter) applyBasemap() {
	if !p.surface.Ready() {
		return
	}

	p.mu.Lock()
	resolved := p.resolved
	p.mu.Unlock()

	p.surface.SetBasemap(resolved)
}

func copyPoint(p *geo.Point) *geo.Point {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
