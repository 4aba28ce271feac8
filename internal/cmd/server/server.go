// Package server parses MCP server flags and selects stdio or HTTP transport.
package server

import (
	"context"
	"flag"
	"time"

	"planfixmcp/internal/mcp/service"
	"planfixmcp/internal/planfix"
	"planfixmcp/internal/platform/config"
)

// Config holds MCP server command configuration. Flags override environment
// variables.
type Config struct {
	Account        string        `env:"PLANFIX_ACCOUNT"`
	APIKey         string        `env:"PLANFIX_API_KEY"`
	BaseURL        string        `env:"PLANFIX_BASE_URL"`
	Debug          bool          `env:"PLANFIX_DEBUG"           envDefault:"false"`
	RequestTimeout time.Duration `env:"PLANFIX_REQUEST_TIMEOUT" envDefault:"30s"`
	Transport      string        `env:"PLANFIX_MCP_TRANSPORT"   envDefault:"stdio"`
	HTTPAddr       string        `env:"PLANFIX_MCP_HTTP_ADDR"   envDefault:"localhost:8700"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.Account, "account", cfg.Account, "Planfix account subdomain")
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "Planfix REST API token")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Planfix REST API base URL (overrides the account-derived URL)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log API requests and responses")
	fs.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "per-request timeout for API calls")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server with the parsed configuration.
func Run(ctx context.Context, cfg Config) error {
	return service.Run(ctx, service.Config{
		Planfix: planfix.Config{
			Account:        cfg.Account,
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Debug:          cfg.Debug,
			RequestTimeout: cfg.RequestTimeout,
		},
		Transport: service.TransportKind(cfg.Transport),
		HTTPAddr:  cfg.HTTPAddr,
	})
}
