// Package catalog owns the canonical station list and selection state
// and derives the filtered, sorted, price-annotated views consumed by
// the map and the CLI.
package catalog

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"

	"surtigo/internal/geo"
	"surtigo/pkg/api"
)

const (
	// DefaultRadiusKm drives the first load and place-name searches
	// until the user picks another radius.
	DefaultRadiusKm = 10.0

	// DefaultLimit bounds the station count per nearby query.
	DefaultLimit = 50

	loadErrorMessage         = "No se pudieron cargar las estaciones. Inténtalo de nuevo."
	municipioErrorMessage = "Error al cargar estaciones del municipio."
)

// StationSource is the external collaborator that fetches raw station
// records. Implemented by pkg/api.Client.
type StationSource interface {
	NearbyStations(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]api.Station, error)
	MunicipioStations(ctx context.Context, idMunicipio int) ([]api.Station, error)
	Provinces(ctx context.Context) ([]api.Province, error)
}

// Geocoder resolves free text to a best-match point. A nil point with
// a nil error means no match.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*geo.Point, error)
}

// SearchCenter is the point and radius currently driving the loaded
// station set. Distinct from the user's sensed location.
type SearchCenter struct {
	Point    geo.Point
	RadiusKm float64
}

// View is the derived projection of the station list for the active
// query and fuel kind: stations sorted ascending by price of the
// selected kind (missing prices last), plus the average present price.
type View struct {
	Stations     []api.Station
	AveragePrice float64
	Kind         FuelKind
}

// Catalog owns the station list, the selection state and the search
// center, and recomputes derived views on every read.
type Catalog struct {
	source   StationSource
	geocoder Geocoder
	locator  *geo.Locator
	log      *slog.Logger
	limit    int

	mu         sync.Mutex
	stations   []api.Station
	loading    bool
	err        string
	kind       FuelKind
	query      string
	center     *SearchCenter
	lastRadius float64
	provinces  []api.Province

	onChange func()
}

// New creates a Catalog. The locator may be nil; it is only used to
// annotate distances on municipality loads.
func New(source StationSource, geocoder Geocoder, locator *geo.Locator, logger *slog.Logger) *Catalog {
	return &Catalog{
		source:     source,
		geocoder:   geocoder,
		locator:    locator,
		log:        logger,
		limit:      DefaultLimit,
		kind:       FuelGasolina95,
		lastRadius: DefaultRadiusKm,
	}
}

// SetOnChange registers the single callback invoked after every state
// change. It is called without internal locks held.
func (c *Catalog) SetOnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

func (c *Catalog) notify() {
	c.mu.Lock()
	fn := c.onChange
	c.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// LoadAround starts loading stations within radiusKm of center. It
// returns immediately; the returned channel closes once the result has
// been applied. Concurrent loads race and the last resolved one wins.
func (c *Catalog) LoadAround(ctx context.Context, center geo.Point, radiusKm float64) <-chan struct{} {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.center = &SearchCenter{Point: center, RadiusKm: radiusKm}
	c.lastRadius = radiusKm
	c.mu.Unlock()
	c.notify()

	done := make(chan struct{})
	go func() {
		defer close(done)
		stations, err := c.source.NearbyStations(ctx, center.Lat, center.Lon, radiusKm, c.limit)

		c.mu.Lock()
		if err != nil {
			c.log.Debug("nearby load failed", "error", err)
			c.err = loadErrorMessage
			c.stations = nil
		} else {
			c.stations = stations
		}
		c.loading = false
		c.mu.Unlock()
		c.notify()
	}()
	return done
}

// LoadMunicipality loads all stations of a municipality, annotating
// each with the distance from the user's last known location.
func (c *Catalog) LoadMunicipality(ctx context.Context, idMunicipio int) <-chan struct{} {
	c.mu.Lock()
	c.loading = true
	c.err = ""
	c.mu.Unlock()
	c.notify()

	done := make(chan struct{})
	go func() {
		defer close(done)
		stations, err := c.source.MunicipioStations(ctx, idMunicipio)

		c.mu.Lock()
		if err != nil {
			c.log.Debug("municipality load failed", "error", err)
			c.err = municipioErrorMessage
			c.stations = nil
		} else {
			if c.locator != nil {
				for i := range stations {
					stations[i].DistanceKm = c.locator.DistanceFromLastKnown(geo.Point{Lat: stations[i].Lat, Lon: stations[i].Lon})
				}
			}
			c.stations = stations
		}
		c.loading = false
		c.mu.Unlock()
		c.notify()
	}()
	return done
}

// LoadProvinces fetches the province catalog. Failures are logged and
// leave the previous catalog in place.
func (c *Catalog) LoadProvinces(ctx context.Context) {
	provinces, err := c.source.Provinces(ctx)
	if err != nil {
		c.log.Debug("province load failed", "error", err)
		return
	}
	c.mu.Lock()
	c.provinces = provinces
	c.mu.Unlock()
	c.notify()
}

// SearchByPlaceName geocodes free text and, on a match, clears the
// text query and reloads stations around the match with the last used
// radius. A geocoding miss is a silent no-op.
func (c *Catalog) SearchByPlaceName(ctx context.Context, text string) <-chan struct{} {
	noop := make(chan struct{})
	close(noop)

	if strings.TrimSpace(text) == "" {
		return noop
	}

	point, err := c.geocoder.Geocode(ctx, text)
	if err != nil || point == nil {
		c.log.Debug("geocoding found nothing", "query", text, "error", err)
		return noop
	}

	c.mu.Lock()
	c.query = ""
	radius := c.lastRadius
	c.mu.Unlock()

	return c.LoadAround(ctx, *point, radius)
}

// SetFuelKind selects the fuel kind driving sorting and averages.
func (c *Catalog) SetFuelKind(kind FuelKind) {
	c.mu.Lock()
	c.kind = kind
	c.mu.Unlock()
	c.notify()
}

// SetQuery sets the free-text filter.
func (c *Catalog) SetQuery(text string) {
	c.mu.Lock()
	c.query = text
	c.mu.Unlock()
	c.notify()
}

// Stations returns the canonical station list of the last load.
func (c *Catalog) Stations() []api.Station {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stations
}

// Loading reports whether a load is in flight.
func (c *Catalog) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the user-facing message of the last failed load, or "".
func (c *Catalog) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// SelectedFuel returns the active fuel kind.
func (c *Catalog) SelectedFuel() FuelKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kind
}

// Query returns the active free-text filter.
func (c *Catalog) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Center returns the active search center, or nil before the first
// load.
func (c *Catalog) Center() *SearchCenter {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.center == nil {
		return nil
	}
	sc := *c.center
	return &sc
}

// Provinces returns the loaded province catalog.
func (c *Catalog) Provinces() []api.Province {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.provinces
}

func (c *Catalog) snapshot() (stations []api.Station, query string, kind FuelKind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stations, c.query, c.kind
}

// Filtered returns the stations matching the active text query. An
// empty query matches everything; a non-empty one matches when it is a
// case-insensitive substring of name, address, locality or province.
func (c *Catalog) Filtered() []api.Station {
	stations, query, _ := c.snapshot()
	return filterStations(stations, query)
}

func filterStations(stations []api.Station, query string) []api.Station {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return stations
	}

	var matched []api.Station
	for _, s := range stations {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Address), q) ||
			strings.Contains(strings.ToLower(s.Locality), q) ||
			strings.Contains(strings.ToLower(s.Province), q) {
			matched = append(matched, s)
		}
	}
	return matched
}

// Sorted returns the filtered stations ordered ascending by the price
// of the selected fuel kind. A missing price sorts after all present
// prices; ties keep their prior relative order.
func (c *Catalog) Sorted() []api.Station {
	stations, query, kind := c.snapshot()
	return sortStations(filterStations(stations, query), kind)
}

func sortStations(stations []api.Station, kind FuelKind) []api.Station {
	sorted := make([]api.Station, len(stations))
	copy(sorted, stations)

	sort.SliceStable(sorted, func(i, j int) bool {
		return priceOrInf(&sorted[i], kind) < priceOrInf(&sorted[j], kind)
	})
	return sorted
}

func priceOrInf(s *api.Station, kind FuelKind) float64 {
	if p := PriceOf(s, kind); p != nil {
		return *p
	}
	return math.Inf(1)
}

// AveragePrice returns the mean of the present, strictly positive
// prices for the selected kind among the sorted view, rounded to 3
// decimals, or 0 when no station has a price for it.
func (c *Catalog) AveragePrice() float64 {
	stations, query, kind := c.snapshot()
	return averagePrice(sortStations(filterStations(stations, query), kind), kind)
}

func averagePrice(stations []api.Station, kind FuelKind) float64 {
	var sum float64
	var n int
	for i := range stations {
		if p := PriceOf(&stations[i], kind); p != nil && *p > 0 {
			sum += *p
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(sum/float64(n)*1000) / 1000
}

// View returns the full derived view in one consistent snapshot.
func (c *Catalog) View() View {
	stations, query, kind := c.snapshot()
	sorted := sortStations(filterStations(stations, query), kind)
	return View{
		Stations:     sorted,
		AveragePrice: averagePrice(sorted, kind),
		Kind:         kind,
	}
}
