package brands

import (
	"strings"
	"testing"
)

func TestLogoURL(t *testing.T) {
	tests := []struct {
		brand string
		want  string
	}{
		{"REPSOL", "https://precioil.es/datos/imagenes/selector/repsol.png"},
		{"repsol", "https://precioil.es/datos/imagenes/selector/repsol.png"},
		{" CEPSA ", "https://precioil.es/datos/imagenes/selector/cepsa.png"},
		{"E.LECLERC", "https://precioil.es/datos/imagenes/selector/e.leclerc.png"},
		{"LOW COST", "https://precioil.es/datos/imagenes/selector/lowcost.png"},
		{"STAR PETROLEUM", "https://precioil.es/datos/imagenes/selector/star.png"},
		{"BALLENOIL 24H", "https://precioil.es/datos/imagenes/selector/ballenoil24h.png"},
	}

	for _, test := range tests {
		if got := LogoURL(test.brand); got != test.want {
			t.Errorf("LogoURL(%q) = %q, expected %q", test.brand, got, test.want)
		}
	}
}

func TestLogoURL_EmptyBrand(t *testing.T) {
	got := LogoURL("")
	if got != GenericLogo {
		t.Errorf("LogoURL(\"\") = %q, expected the generic logo", got)
	}
	if !strings.HasPrefix(got, "data:image/svg+xml,") {
		t.Errorf("generic logo is not an SVG data URI: %q", got)
	}
}

func TestBadgeColor(t *testing.T) {
	if c := BadgeColor("REPSOL"); c.Background != "#EE3524" {
		t.Errorf("BadgeColor(REPSOL) = %+v", c)
	}
	if c := BadgeColor("repsol"); c.Background != "#EE3524" {
		t.Errorf("BadgeColor is expected to be case-insensitive, got %+v", c)
	}
	if c := BadgeColor("UNKNOWN BRAND"); c != defaultColor {
		t.Errorf("BadgeColor(unknown) = %+v, expected the neutral pair", c)
	}
}
