// Command analyze plays headless 2048 games against the configuration files
// and checks that configuration files load and validate.
//
//	analyze simulate -games 200 -strategy corner classic big
//	analyze validate configs/*.json configs/*.hcl
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config-dir",
		Value:   "configs",
		Usage:   "directory containing game configurations",
		Sources: cli.EnvVars("CONFIG_DIR"),
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "simulate games and validate 2048 configurations",
		Commands: []*cli.Command{
			{
				Name:      "simulate",
				Usage:     "play headless games with a strategy and report win rate and tile distribution",
				ArgsUsage: "[config ...]",
				Flags: []cli.Flag{
					configDirFlag(),
					&cli.IntFlag{Name: "games", Value: 100, Usage: "games per configuration"},
					&cli.StringFlag{Name: "strategy", Value: "corner", Usage: "random, greedy or corner"},
					&cli.IntFlag{Name: "seed", Value: 1, Usage: "seed for the first game; game i uses seed+i"},
					&cli.IntFlag{Name: "max-moves", Value: 20000, Usage: "moves after which a game is abandoned"},
					&cli.IntFlag{Name: "workers", Value: 0, Usage: "parallel games (0 uses every CPU)"},
				},
				Action: runSimulate,
			},
			{
				Name:      "validate",
				Usage:     "check configuration files",
				ArgsUsage: "[file ...]",
				Flags:     []cli.Flag{configDirFlag()},
				Action:    runValidate,
			},
		},
	}
}
