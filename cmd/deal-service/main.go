package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded")
	}

	app := &cli.App{
		Name:  "deal-service",
		Usage: "review, approve and pay out community funding deals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "path to the YAML config file",
				EnvVars:  []string{"DEAL_CONFIG_PATH"},
				Required: true,
			},
		},
		Commands: []*cli.Command{
			serveCmd,
			migrateCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("deal-service failed")
	}
}
