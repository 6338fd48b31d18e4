// Package logger configures the global zerolog logger from command line options.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger holds logging options, embedded as a go-flags group.
type Logger struct {
	Level   string `long:"log-level"    env:"LOG_LEVEL"    description:"Log level" choice:"trace" choice:"debug" choice:"info" choice:"warn" choice:"error" default:"info"`
	Format  string `long:"log-format"   env:"LOG_FORMAT"   description:"Log format" choice:"console" choice:"json" default:"console"`
	NoColor bool   `long:"log-no-color" env:"LOG_NO_COLOR" description:"Disable colored console output"`
}

// Setup applies the options to the global logger writing to stderr.
func (l Logger) Setup() {
	l.SetupWriter(os.Stderr)
}

// SetupWriter applies the options to the global logger writing to w.
func (l Logger) SetupWriter(w io.Writer) {
	level, err := zerolog.ParseLevel(strings.ToLower(l.Level))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if l.Format == "json" {
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
		return
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    l.NoColor,
		TimeFormat: time.DateTime,
	}).With().Timestamp().Logger()
}
