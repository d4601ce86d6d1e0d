package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"surtigo/internal/theme"
)

const defaultPrefsDB = "surtigo.db"

func themeCommand() *cli.Command {
	dbFlag := &cli.StringFlag{
		Name:  "db",
		Usage: "Preferences database file",
		Value: defaultPrefsDB,
	}

	return &cli.Command{
		Name:  "theme",
		Usage: "Show or change the display theme preference",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the saved theme mode",
				Flags: []cli.Flag{dbFlag},
				Action: func(c *cli.Context) error {
					mgr, closeStore, err := openThemeManager(c)
					if err != nil {
						return err
					}
					defer closeStore()

					fmt.Printf("mode: %s (resolved: %s)\n", mgr.Mode(), mgr.Resolved())
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "Set the theme mode: light, dark or system",
				ArgsUsage: "<mode>",
				Flags:     []cli.Flag{dbFlag},
				Action: func(c *cli.Context) error {
					mode := theme.Mode(c.Args().First())
					if mode != theme.ModeLight && mode != theme.ModeDark && mode != theme.ModeSystem {
						return fmt.Errorf("invalid mode: %q", c.Args().First())
					}

					mgr, closeStore, err := openThemeManager(c)
					if err != nil {
						return err
					}
					defer closeStore()

					mgr.SetMode(mode)
					fmt.Printf("mode: %s (resolved: %s)\n", mgr.Mode(), mgr.Resolved())
					return nil
				},
			},
			{
				Name:  "cycle",
				Usage: "Advance the theme mode (system → light → dark)",
				Flags: []cli.Flag{dbFlag},
				Action: func(c *cli.Context) error {
					mgr, closeStore, err := openThemeManager(c)
					if err != nil {
						return err
					}
					defer closeStore()

					mgr.Cycle()
					fmt.Printf("mode: %s (resolved: %s)\n", mgr.Mode(), mgr.Resolved())
					return nil
				},
			},
		},
	}
}

func openThemeManager(c *cli.Context) (*theme.Manager, func(), error) {
	store, err := theme.OpenStore(c.String("db"))
	if err != nil {
		return nil, nil, err
	}
	mgr := theme.NewManager(store, nil, newLogger(c))
	return mgr, func() { store.Close() }, nil
}
