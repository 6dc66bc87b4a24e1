package main

import (
	"context"
	"fmt"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/eringen/inkwell"
)

// version is set at build time via ldflags.
var version = "dev"

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := inkwell.LoadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	app := inkwell.New(cfg)
	defer app.Close()
	return app.Start()
}

func main() {
	cmd := &cli.Command{
		Name:    "inkwell",
		Usage:   "Personal blog with an admin dashboard and a contact form",
		Version: version,
		Action:  serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   "config.yaml",
				Sources: cli.EnvVars("INKWELL_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write a starter config file and directory layout",
				Action: runInit,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(fmt.Errorf("inkwell: %w", err))
	}
}
