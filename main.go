// VoyAgent turns free-form travel requests into ranked hotel and flight
// offers.
//
// Usage:
//
//	voyagent serve
//	voyagent search --type trip "trip from New York to Dallas July 10th to July 13th"
//	voyagent extract "hotel in Austin, TX from June 10th to June 14th"
//	voyagent codes add --space sky --name reykjavik --code REYK
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "voyagent",
		Usage:   "Travel request extraction and offer search",
		Version: version,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "extraction",
				Usage:   "Extraction mode (delegated, pattern, hybrid)",
				EnvVars: []string{"EXTRACTION_MODE"},
			},
			&cli.StringFlag{
				Name:    "flight-provider",
				Usage:   "Flight provider (flyscraper, amadeus)",
				EnvVars: []string{"FLIGHT_PROVIDER"},
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "Use generated sample results instead of live providers",
			},
		},

		Commands: []*cli.Command{
			serveCommand(),
			searchCommand(),
			extractCommand(),
			codesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
