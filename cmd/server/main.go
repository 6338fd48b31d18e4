package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/coordparse/internal/config"
	"github.com/woozymasta/coordparse/internal/logger"
	"github.com/woozymasta/coordparse/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

const defaultConfigFile = "config.yaml"

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile     string `short:"c" long:"config"           env:"CONFIG_FILE"      description:"Path to configuration file (.yaml or .toml)" default:"config.yaml"`
	Addr           string `short:"a" long:"addr"             env:"LISTEN_ADDRESS"   description:"Address to listen on"                         default:"0.0.0.0"`
	Port           int    `short:"p" long:"port"             env:"LISTEN_PORT"      description:"Port to listen on"                            default:"8080"`
	Precision      int    `short:"P" long:"precision"        env:"PRECISION"        description:"Decimal places in responses (0-15), overrides config when not negative" default:"-1"`
	MaxInputLength int    `short:"m" long:"max-input-length" env:"MAX_INPUT_LENGTH" description:"Longest accepted input in bytes, overrides config"`
	BatchLimit     int    `short:"b" long:"batch-limit"      env:"BATCH_LIMIT"      description:"Most lines per batch request, overrides config"`
	CORSOrigin     string `long:"cors-origin"                env:"CORS_ORIGIN"      description:"Access-Control-Allow-Origin value, overrides config"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config, only the default path may be absent
	cfg, err := config.Load(opts.ConfigFile, opts.ConfigFile == defaultConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.Precision > 15 {
		log.Fatal().Int("precision", opts.Precision).Msg("Precision must be between 0 and 15")
	}
	opts.apply(cfg)

	srvCtx := server.NewServerContext(cfg)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           srvCtx.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Int("precision", cfg.Precision).
		Int("batch_limit", cfg.BatchLimit).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// apply overrides config values with flags given on the command line.
func (o Options) apply(cfg *config.Config) {
	if o.Precision >= 0 {
		cfg.Precision = o.Precision
	}
	if o.MaxInputLength > 0 {
		cfg.MaxInputLength = o.MaxInputLength
	}
	if o.BatchLimit > 0 {
		cfg.BatchLimit = o.BatchLimit
	}
	if o.CORSOrigin != "" {
		cfg.CORSOrigin = o.CORSOrigin
	}
}
