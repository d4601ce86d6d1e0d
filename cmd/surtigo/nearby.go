package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"surtigo/internal/catalog"
	"surtigo/internal/geo"
	"surtigo/pkg/api"
)

func nearbyCommand() *cli.Command {
	return &cli.Command{
		Name:  "nearby",
		Usage: "List nearby fuel stations ranked by price",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "location",
				Usage: "Place name to search around (geocoded)",
			},
			&cli.Float64Flag{
				Name:  "lat",
				Usage: "Latitude of the search center",
			},
			&cli.Float64Flag{
				Name:  "long",
				Usage: "Longitude of the search center",
			},
			&cli.Float64Flag{
				Name:    "radius",
				Aliases: []string{"r"},
				Usage:   "Search radius in kilometers",
				Value:   catalog.DefaultRadiusKm,
			},
			&cli.StringFlag{
				Name:    "fuel",
				Aliases: []string{"f"},
				Usage:   "Fuel kind: gasolina95, gasolina98, diesel, dieselPremium, glp",
				Value:   string(catalog.FuelGasolina95),
			},
			&cli.StringFlag{
				Name:    "query",
				Aliases: []string{"q"},
				Usage:   "Filter stations by name, address, locality or province",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "Maximum number of stations to fetch",
				Value: catalog.DefaultLimit,
			},
		},
		Action: nearbyAction,
	}
}

func nearbyAction(c *cli.Context) error {
	kind, ok := catalog.ParseFuelKind(c.String("fuel"))
	if !ok {
		return fmt.Errorf("unknown fuel kind: %s", c.String("fuel"))
	}

	logger := newLogger(c)
	client := api.NewClient(apiBaseURL(), logger)
	cat := catalog.New(client, catalog.NewNominatimGeocoder(), nil, logger)
	cat.SetFuelKind(kind)
	cat.SetQuery(c.String("query"))

	loc := c.String("location")
	lat := c.Float64("lat")
	lng := c.Float64("long")
	radius := c.Float64("radius")

	switch {
	case loc != "":
		<-cat.SearchByPlaceName(c.Context, loc)
		if cat.Center() == nil {
			return fmt.Errorf("no location found for %q", loc)
		}
	case lat == 0 && lng == 0:
		return errors.New("location or latitude and longitude are required")
	default:
		<-cat.LoadAround(c.Context, geo.Point{Lat: lat, Lon: lng}, radius)
	}

	if msg := cat.Err(); msg != "" {
		return errors.New(msg)
	}

	printStations(cat.View())
	return nil
}

func printStations(view catalog.View) {
	label := catalog.FuelLabels[view.Kind]

	for i := range view.Stations {
		s := &view.Stations[i]
		rank := i + 1
		price := catalog.PriceOf(s, view.Kind)

		var flag string
		switch {
		case rank <= 3 && price != nil:
			flag = " ★"
		case price != nil && view.AveragePrice > 0 && *price < view.AveragePrice:
			flag = " ↓"
		}

		fmt.Printf("%d. %s (%s)%s\n", rank, s.Name, s.Address, flag)
		if s.Locality != "" || s.Province != "" {
			fmt.Printf("   %s\n", joinPlace(s.Locality, s.Province))
		}
		if s.DistanceKm != nil {
			fmt.Printf("   Distance: %.2f km\n", *s.DistanceKm)
		}
		if price != nil {
			fmt.Printf("   %s: %.3f €/L\n", label, *price)
		} else {
			fmt.Printf("   %s: Sin datos\n", label)
		}
		if s.Schedule != "" {
			fmt.Printf("   Horario: %s\n", s.Schedule)
		}
		fmt.Println()
	}

	fmt.Printf("Found %d stations\n", len(view.Stations))
	if view.AveragePrice > 0 {
		fmt.Printf("Average %s price: %.3f €/L\n", label, view.AveragePrice)
	}
}

func joinPlace(locality, province string) string {
	parts := make([]string, 0, 2)
	if locality != "" {
		parts = append(parts, locality)
	}
	if province != "" {
		parts = append(parts, province)
	}
	return strings.Join(parts, " · ")
}
