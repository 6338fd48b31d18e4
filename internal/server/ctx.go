package server

import (
	"crypto/sha256"
	"fmt"

	"github.com/woozymasta/coordparse/assets"
	"github.com/woozymasta/coordparse/internal/config"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	IndexHTML []byte
	Favicon   []byte
	indexETag string
}

// NewServerContext initializes the context from the loaded configuration.
func NewServerContext(cfg *config.Config) *ServerContext {
	if cfg == nil {
		cfg = config.Default()
	}

	log.Info().
		Int("precision", cfg.Precision).
		Int("max_input_length", cfg.MaxInputLength).
		Int("batch_limit", cfg.BatchLimit).
		Str("cors_origin", cfg.CORSOrigin).
		Msg("Server context initialized")

	sum := sha256.Sum256(assets.Index)

	return &ServerContext{
		Config:    cfg,
		IndexHTML: assets.Index,
		Favicon:   assets.Favicon,
		indexETag: fmt.Sprintf(`"%x"`, sum[:8]),
	}
}
