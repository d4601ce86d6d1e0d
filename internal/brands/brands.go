// Package brands maps station brand labels to marker logo URLs and
// badge colors. Logos come from precioil.es with an SVG fallback for
// unknown brands.
package brands

import (
	"fmt"
	"net/url"
	"strings"
)

const logoBaseURL = "https://precioil.es/datos/imagenes/selector"

// Explicit brand → filename slug mapping for brands whose slug differs
// from simple lowercasing. Single-word brands auto-resolve.
var slugOverrides = map[string]string{
	"E.LECLERC":        "e.leclerc",
	"ELECLERC":         "e.leclerc",
	"GALP&GO":          "galp",
	"LOW COST":         "lowcost",
	"LOW COST REPOST":  "lowcost",
	"STAR PETROLEUM":   "star",
	"NOVEL OIL SYSTEM": "novel",
	"OIL+":             "oil",
	"SIMON GRUP":       "simon",
}

// GenericLogo is a data URI with a neutral fuel-pump glyph, used when
// the brand is unknown or its logo cannot be resolved.
var GenericLogo = "data:image/svg+xml," + url.PathEscape(
	`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 40 40">`+
		`<circle cx="20" cy="20" r="20" fill="#6B7280"/>`+
		`<rect x="10" y="10" width="13" height="16" rx="2" fill="#fff"/>`+
		`<rect x="12" y="12" width="9" height="5" rx="1" fill="#6B7280"/>`+
		`<path d="M23 15l4 3v7h-2v-5h-2" fill="none" stroke="#fff" stroke-width="1.5" stroke-linecap="round" stroke-linejoin="round"/>`+
		`<rect x="13" y="27" width="7" height="3" rx="1" fill="#fff"/>`+
		`</svg>`)

// Color is a badge color pair for popups.
type Color struct {
	Background string
	Foreground string
}

var defaultColor = Color{Background: "#3f3f46", Foreground: "#fff"}

var brandColors = map[string]Color{
	"REPSOL":    {"#EE3524", "#fff"},
	"BP":        {"#009A44", "#fff"},
	"CEPSA":     {"#E31837", "#fff"},
	"SHELL":     {"#DD1D21", "#fff"},
	"GALP":      {"#FF5A00", "#fff"},
	"MOEVE":     {"#1E3A8A", "#fff"},
	"BALLENOIL": {"#0891B2", "#fff"},
	"ALCAMPO":   {"#DC2626", "#fff"},
	"CARREFOUR": {"#004E98", "#fff"},
	"PETROPRIX": {"#16A34A", "#fff"},
	"E.LECLERC": {"#0057A8", "#fff"},
	"PLENERGY":  {"#059669", "#fff"},
	"PLENOIL":   {"#0D9488", "#fff"},
	"Q8":        {"#008751", "#fff"},
	"ENI":       {"#FDE047", "#333"},
	"STAR":      {"#B91C1C", "#fff"},
	"DISA":      {"#1B3A5C", "#fff"},
	"AVIA":      {"#1D4ED8", "#fff"},
	"CAMPSA":    {"#DC2626", "#FDE047"},
	"EROSKI":    {"#EA580C", "#fff"},
	"BONAREA":   {"#65A30D", "#fff"},
	"MEROIL":    {"#0284C7", "#fff"},
	"SCAT":      {"#0F766E", "#fff"},
	"ZOILO":     {"#6D28D9", "#fff"},
	"LOW COST":  {"#F59E0B", "#333"},
}

// LogoURL returns the logo URL for a brand label, or GenericLogo for
// an empty label. Unknown brands get an auto-generated slug; the
// renderer is expected to fall back to GenericLogo when the URL 404s.
func LogoURL(brand string) string {
	if brand == "" {
		return GenericLogo
	}
	b := strings.ToUpper(strings.TrimSpace(brand))

	if slug, ok := slugOverrides[b]; ok {
		return fmt.Sprintf("%s/%s.png", logoBaseURL, slug)
	}

	// Multi-word brands: try the first word's override, then fall
	// through to a lowercased slug of the full label.
	if first, _, found := strings.Cut(b, " "); found {
		if slug, ok := slugOverrides[first]; ok {
			return fmt.Sprintf("%s/%s.png", logoBaseURL, slug)
		}
	}

	slug := strings.ToLower(strings.ReplaceAll(b, " ", ""))
	return fmt.Sprintf("%s/%s.png", logoBaseURL, slug)
}

// BadgeColor returns the badge color pair for a brand label, falling
// back to a neutral pair for unknown brands.
func BadgeColor(brand string) Color {
	if c, ok := brandColors[strings.ToUpper(strings.TrimSpace(brand))]; ok {
		return c
	}
	return defaultColor
}
