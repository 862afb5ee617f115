package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures server level configuration. Upstream base URLs default to
// the production services but are injected everywhere so tests can point the
// gateway at fakes.
type Config struct {
	Addr        string `env:"MIIGATE_ADDR" envDefault:":8080"`
	MetricsAddr string `env:"MIIGATE_METRICS_ADDR" envDefault:":9090"`

	DatabaseURL   string `env:"DATABASE_URL"`
	JWTSigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`

	// MiiCacheDir is the per-user rendered preview slot directory.
	MiiCacheDir string `env:"MII_CACHE_DIR" envDefault:"./cache/miis"`

	LegacyGalleryBaseURL  string `env:"LEGACY_GALLERY_BASE_URL" envDefault:"https://miicontestp.wii.rc24.xyz"`
	AccountLookupBaseURL  string `env:"ACCOUNT_LOOKUP_BASE_URL" envDefault:"https://mii-unsecure.ariankordi.net"`
	ModernRendererBaseURL string `env:"MODERN_RENDERER_BASE_URL" envDefault:"https://mii-unsecure.ariankordi.net"`
	FirstGenStudioBaseURL string `env:"FIRST_GEN_STUDIO_BASE_URL" envDefault:"https://studio.mii.nintendo.com"`

	// UpstreamTimeout bounds every upstream round trip. There is no retry:
	// a single failed attempt is terminal for the pipeline run.
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config from env: %w", err)
	}
	return cfg, nil
}
