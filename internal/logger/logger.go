// Package logger builds the zerolog loggers used by the command line tool.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const (
	LogLevelFlag = "loglevel"
	LogJSONFlag  = "log-json"

	consoleTimeFormat = time.RFC3339
	defaultMinLevel   = "info"
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = utcNow
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// Config selects the level and format of a logger.
type Config struct {
	MinLevel string // debug | info | warn | error
	JSON     bool   // raw JSON lines instead of the console format
	NoColor  bool
}

// Create returns a logger writing to out. A nil config logs at info level in
// console format. An unparsable level falls back to info and is reported
// once through the new logger.
func Create(cfg *Config, out io.Writer) *zerolog.Logger {
	if cfg == nil {
		cfg = &Config{MinLevel: defaultMinLevel}
	}

	w := out
	if !cfg.JSON {
		w = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    cfg.NoColor,
			TimeFormat: consoleTimeFormat,
		}
	}

	level, levelErr := zerolog.ParseLevel(cfg.MinLevel)
	if levelErr != nil || cfg.MinLevel == "" {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if levelErr != nil {
		log.Error().Msgf("Failed to parse log level %q, using %q instead", cfg.MinLevel, level)
	}
	return &log
}

// CreateFromContext builds the stderr logger from the command line flags.
// fallbackLevel is used when the level flag was not given.
func CreateFromContext(c *cli.Context, fallbackLevel string) *zerolog.Logger {
	level := c.String(LogLevelFlag)
	if !c.IsSet(LogLevelFlag) && fallbackLevel != "" {
		level = fallbackLevel
	}

	stderr := os.Stderr
	cfg := &Config{
		MinLevel: level,
		JSON:     c.Bool(LogJSONFlag),
		NoColor:  !term.IsTerminal(int(stderr.Fd())),
	}
	return Create(cfg, colorable.NewColorable(stderr))
}

// Flags returns the logging flags shared by every command.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    LogLevelFlag,
			Value:   defaultMinLevel,
			Usage:   "Application logging level {debug, info, warn, error}",
			EnvVars: []string{"DILITHIUM_LOGLEVEL"},
		},
		&cli.BoolFlag{
			Name:    LogJSONFlag,
			Usage:   "Log as JSON lines instead of the console format",
			EnvVars: []string{"DILITHIUM_LOG_JSON"},
		},
	}
}
