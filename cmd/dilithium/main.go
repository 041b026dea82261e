package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/KarpelesLab/dilithium"
	"github.com/KarpelesLab/dilithium/internal/config"
	"github.com/KarpelesLab/dilithium/internal/logger"
)

var Version = "DEV"

const (
	configFlag  = "config"
	modeFlag    = "mode"
	workersFlag = "workers"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log := logger.Create(nil, os.Stderr)
		log.Error().Msg(err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := &cli.App{}
	app.Name = "dilithium"
	app.Usage = "Create Dilithium keys, sign files and verify signatures"
	app.UsageText = "dilithium [global options] command [command options] [arguments...]"
	app.Version = Version
	app.Flags = append([]cli.Flag{
		&cli.StringFlag{
			Name:    configFlag,
			Usage:   fmt.Sprintf("Configuration file, searched as %v in ~/.dilithium by default", config.DefaultConfigFiles),
			EnvVars: []string{"DILITHIUM_CONFIG"},
		},
		&cli.StringFlag{
			Name:    modeFlag,
			Aliases: []string{"m"},
			Usage:   "Parameter set for new keys: 0-3 or Dilithium-ModeN",
			EnvVars: []string{"DILITHIUM_MODE"},
		},
		&cli.IntFlag{
			Name:    workersFlag,
			Usage:   "Number of signatures verified concurrently",
			EnvVars: []string{"DILITHIUM_WORKERS"},
		},
	}, logger.Flags()...)
	app.Commands = commands()
	return app
}

// settings is what every command needs: the resolved configuration and a
// logger built from it.
type settings struct {
	mode    *dilithium.Mode
	workers int
	log     *zerolog.Logger
}

// loadSettings merges the configuration file with the command line flags.
// Flags win over the file.
func loadSettings(c *cli.Context) (*settings, error) {
	cfg, warnings, err := config.Load(c.String(configFlag))
	if err != nil {
		return nil, err
	}
	if c.IsSet(modeFlag) {
		cfg.Mode = c.String(modeFlag)
	}
	if c.IsSet(workersFlag) {
		cfg.Workers = c.Int(workersFlag)
	}

	log := logger.CreateFromContext(c, cfg.LogLevel)
	if cfg.Source() != "" {
		log.Debug().Str("file", cfg.Source()).Msg("Loaded configuration")
	}
	if warnings != "" {
		log.Warn().Str("file", cfg.Source()).Msgf("Configuration has unknown keys: %s", warnings)
	}

	mode, err := cfg.ResolveMode()
	if err != nil {
		return nil, errors.Wrap(err, "cannot resolve mode")
	}
	return &settings{mode: mode, workers: cfg.Workers, log: log}, nil
}
