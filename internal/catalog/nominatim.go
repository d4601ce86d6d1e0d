package catalog

import (
	"context"
	"strconv"

	"github.com/muesli/gominatim"

	"surtigo/internal/geo"
)

const (
	nominatimServer = "https://nominatim.openstreetmap.org/"

	// Queries carry a country qualifier so free text like "madrid"
	// resolves inside Spain.
	countryQualifier = ", España"
)

// NominatimGeocoder resolves place names through the public Nominatim
// service, taking only the single best match.
type NominatimGeocoder struct{}

// NewNominatimGeocoder configures the gominatim client and returns a
// geocoder.
func NewNominatimGeocoder() *NominatimGeocoder {
	gominatim.SetServer(nominatimServer)
	return &NominatimGeocoder{}
}

// Geocode implements Geocoder. A nil point with nil error means the
// service found nothing usable.
func (g *NominatimGeocoder) Geocode(_ context.Context, query string) (*geo.Point, error) {
	qry := gominatim.SearchQuery{
		Q: query + countryQualifier,
	}

	resp, err := qry.Get()
	if err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(resp[0].Lat, 64)
	if err != nil {
		return nil, err
	}
	lon, err := strconv.ParseFloat(resp[0].Lon, 64)
	if err != nil {
		return nil, err
	}

	return &geo.Point{Lat: lat, Lon: lon}, nil
}
