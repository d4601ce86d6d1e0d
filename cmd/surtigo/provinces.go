package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"surtigo/internal/catalog"
	"surtigo/pkg/api"
)

func provincesCommand() *cli.Command {
	return &cli.Command{
		Name:  "provinces",
		Usage: "List the available provinces",
		Action: func(c *cli.Context) error {
			logger := newLogger(c)
			client := api.NewClient(apiBaseURL(), logger)
			cat := catalog.New(client, catalog.NewNominatimGeocoder(), nil, logger)

			cat.LoadProvinces(c.Context)
			provinces := cat.Provinces()
			if len(provinces) == 0 {
				fmt.Println("No provinces available.")
				return nil
			}

			for _, p := range provinces {
				fmt.Printf("%3d  %s\n", p.IDProvincia, p.Nombre)
			}
			return nil
		},
	}
}

func averagesCommand() *cli.Command {
	return &cli.Command{
		Name:  "averages",
		Usage: "Show average fuel prices for a province",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:     "province",
				Aliases:  []string{"p"},
				Usage:    "Province id",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger(c)
			client := api.NewClient(apiBaseURL(), logger)

			averages, err := client.ProvinceAverages(c.Context, c.Int("province"))
			if err != nil {
				return err
			}
			if len(averages) == 0 {
				fmt.Println("No averages available.")
				return nil
			}

			for _, a := range averages {
				fmt.Printf("%-16s %.3f €/L  (updated %s)\n", a.FuelTypeName, a.AveragePrice, a.LastCalculated)
			}
			return nil
		},
	}
}
