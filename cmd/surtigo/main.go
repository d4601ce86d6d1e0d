package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Optional .env with SURTIGO_API_URL and friends.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "surtigo",
		Usage: "Find and rank nearby fuel stations by price",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			nearbyCommand(),
			provincesCommand(),
			averagesCommand(),
			themeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(c *cli.Context) *slog.Logger {
	if c.Bool("verbose") {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
}

func apiBaseURL() string {
	return os.Getenv("SURTIGO_API_URL")
}
