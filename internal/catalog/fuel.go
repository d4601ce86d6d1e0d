package catalog

import "surtigo/pkg/api"

// FuelKind is one of the five supported fuel categories.
type FuelKind string

const (
	FuelGasolina95    FuelKind = "gasolina95"
	FuelGasolina98    FuelKind = "gasolina98"
	FuelDiesel        FuelKind = "diesel"
	FuelDieselPremium FuelKind = "dieselPremium"
	FuelGLP           FuelKind = "glp"
)

// FuelLabels maps each kind to its display label.
var FuelLabels = map[FuelKind]string{
	FuelGasolina95:    "Gasolina 95",
	FuelGasolina98:    "Gasolina 98",
	FuelDiesel:        "Diésel",
	FuelDieselPremium: "Diésel Premium",
	FuelGLP:           "GLP",
}

// FuelKinds lists all kinds in display order.
var FuelKinds = []FuelKind{
	FuelGasolina95,
	FuelGasolina98,
	FuelDiesel,
	FuelDieselPremium,
	FuelGLP,
}

// ParseFuelKind validates a user-supplied fuel kind string.
func ParseFuelKind(s string) (FuelKind, bool) {
	kind := FuelKind(s)
	_, ok := FuelLabels[kind]
	return kind, ok
}

// PriceOf extracts the price of a station for the given fuel kind, or
// nil when the station does not sell it. This is the single source of
// the kind-to-field mapping.
func PriceOf(s *api.Station, kind FuelKind) *float64 {
	switch kind {
	case FuelDiesel:
		return s.Diesel
	case FuelDieselPremium:
		return s.DieselPremium
	case FuelGasolina95:
		return s.Gasolina95
	case FuelGasolina98:
		return s.Gasolina98
	case FuelGLP:
		return s.GLP
	}
	return nil
}
