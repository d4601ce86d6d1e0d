// Package api provides types and a client to interact with the surtigo
// fuel price backend: nearby station queries, province catalogs and
// average prices.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/tkrajina/gpxgo/gpx"
)

const (
	DefaultBaseURL = "http://localhost:8080/api"
	DefaultTimeout = 30 * time.Second
	DefaultLimit   = 50

	cacheDefaultExpiry = 5 * time.Minute
	cacheCleanupTime   = 10 * time.Minute

	metersPerKm        = 1000.0
	unknownStationName = "Estación desconocida"
)

// Client fetches fuel station data from the surtigo backend. Nearby
// query results are cached in-process for a few minutes.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *cache.Cache
	log        *slog.Logger
}

// NewClient creates a Client with default settings. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		cache: cache.New(cacheDefaultExpiry, cacheCleanupTime),
		log:   logger,
	}
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error unmarshaling JSON: %w", err)
	}
	return nil
}

// NearbyStations fetches stations within radiusKm of the given point,
// bounded to limit results, and maps them into the Station shape.
func (c *Client) NearbyStations(ctx context.Context, lat, lon, radiusKm float64, limit int) ([]Station, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	cacheKey := fmt.Sprintf("nearby_%f_%f_%f_%d", lat, lon, radiusKm, limit)
	if cached, found := c.cache.Get(cacheKey); found {
		c.log.Debug("using cached data", "key", cacheKey)
		return cached.([]Station), nil
	}

	params := url.Values{}
	params.Set("latitud", fmt.Sprintf("%f", lat))
	params.Set("longitud", fmt.Sprintf("%f", lon))
	params.Set("radio", fmt.Sprintf("%f", radiusKm))
	params.Set("limite", fmt.Sprintf("%d", limit))

	var raw []RadioStation
	if err := c.getJSON(ctx, fmt.Sprintf("%s/estaciones/radio?%s", c.baseURL, params.Encode()), &raw); err != nil {
		return nil, fmt.Errorf("error fetching nearby stations: %w", err)
	}

	stations := make([]Station, 0, len(raw))
	for i := range raw {
		stations = append(stations, mapRadioStation(&raw[i], lat, lon))
	}

	c.cache.Set(cacheKey, stations, cache.DefaultExpiration)
	return stations, nil
}

// mapRadioStation maps a raw /estaciones/radio record into a Station.
// A missing name becomes a placeholder; a missing distance is computed
// from the query center. Distances carry 3 decimals.
func mapRadioStation(raw *RadioStation, queryLat, queryLon float64) Station {
	name := raw.NombreEstacion
	if name == "" {
		name = unknownStationName
	}

	var distance *float64
	if raw.Distancia != nil {
		d := round3(*raw.Distancia)
		distance = &d
	} else {
		d := round3(gpx.Distance2D(queryLat, queryLon, raw.Latitud, raw.Longitud, true) / metersPerKm)
		distance = &d
	}

	return Station{
		ID:            raw.IDEstacion,
		Name:          name,
		Address:       raw.Direccion,
		Lat:           raw.Latitud,
		Lon:           raw.Longitud,
		Province:      raw.Provincia,
		Locality:      raw.Localidad,
		Brand:         raw.Marca,
		Schedule:      raw.Horario,
		DistanceKm:    distance,
		Diesel:        raw.Diesel,
		DieselPremium: raw.DieselPremium,
		Gasolina95:    raw.Gasolina95,
		Gasolina98:    raw.Gasolina98,
		GLP:           raw.GLP,
	}
}

// MunicipioStations fetches all stations of a municipality. The
// records carry no prices or distances.
func (c *Client) MunicipioStations(ctx context.Context, idMunicipio int) ([]Station, error) {
	var raw []MunicipioStation
	if err := c.getJSON(ctx, fmt.Sprintf("%s/estaciones/municipio/%d", c.baseURL, idMunicipio), &raw); err != nil {
		return nil, fmt.Errorf("error fetching municipality stations: %w", err)
	}

	stations := make([]Station, 0, len(raw))
	for _, r := range raw {
		name := r.Nombre
		if name == "" {
			name = unknownStationName
		}
		stations = append(stations, Station{
			ID:      r.IDEstacion,
			Name:    name,
			Address: r.Direccion,
			Lat:     r.Latitud,
			Lon:     r.Longitud,
		})
	}
	return stations, nil
}

// Provinces fetches the province catalog.
func (c *Client) Provinces(ctx context.Context) ([]Province, error) {
	var provinces []Province
	if err := c.getJSON(ctx, fmt.Sprintf("%s/provincias", c.baseURL), &provinces); err != nil {
		return nil, fmt.Errorf("error fetching provinces: %w", err)
	}
	return provinces, nil
}

// ProvinceAverages fetches the average fuel prices of a province.
func (c *Client) ProvinceAverages(ctx context.Context, idProvincia int) ([]ProvinceAverage, error) {
	var averages []ProvinceAverage
	if err := c.getJSON(ctx, fmt.Sprintf("%s/precios/medios/provincia/%d", c.baseURL, idProvincia), &averages); err != nil {
		return nil, fmt.Errorf("error fetching province averages: %w", err)
	}
	return averages, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
