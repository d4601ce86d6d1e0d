package mapview

import (
	"fmt"
	"math"

	"surtigo/internal/brands"
	"surtigo/internal/catalog"
	"surtigo/pkg/api"
)

const noPriceText = "Sin datos"

// Short labels for the compact all-prices table.
var shortFuelLabels = map[catalog.FuelKind]string{
	catalog.FuelGasolina95:    "G95",
	catalog.FuelGasolina98:    "G98",
	catalog.FuelDiesel:        "Diésel",
	catalog.FuelDieselPremium: "D.Prem",
	catalog.FuelGLP:           "GLP",
}

func buildPopup(s *api.Station, kind catalog.FuelKind, rank int, top, cheap bool) PopupSpec {
	return PopupSpec{
		Rank:         rank,
		Top:          top,
		Cheap:        cheap,
		Name:         s.Name,
		Locality:     s.Locality,
		Province:     s.Province,
		Brand:        s.Brand,
		BrandColor:   brands.BadgeColor(s.Brand),
		FuelLabel:    catalog.FuelLabels[kind],
		PriceText:    formatPrice(catalog.PriceOf(s, kind)),
		DistanceText: formatDistance(s.DistanceKm),
		Schedule:     s.Schedule,
		OtherPrices:  priceRows(s),
	}
}

func formatPrice(price *float64) string {
	if price == nil {
		return noPriceText
	}
	return fmt.Sprintf("%.3f €/L", *price)
}

// formatDistance renders meters below one kilometer, otherwise
// kilometers with one decimal. Empty when the distance is unknown.
func formatDistance(km *float64) string {
	if km == nil {
		return ""
	}
	if *km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(*km*1000)))
	}
	return fmt.Sprintf("%.1f km", *km)
}

func priceRows(s *api.Station) []PriceRow {
	var rows []PriceRow
	for _, kind := range catalog.FuelKinds {
		if p := catalog.PriceOf(s, kind); p != nil {
			rows = append(rows, PriceRow{
				Label: shortFuelLabels[kind],
				Value: fmt.Sprintf("%.3f", *p),
			})
		}
	}
	return rows
}
