// Package server parses configuration for the task server command.
package server

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/jmoran/taskboard/internal/app"
	"github.com/jmoran/taskboard/internal/auth/token"
	"github.com/jmoran/taskboard/internal/platform/config"
)

// envConfig holds raw env values before flag overrides and validation.
type envConfig struct {
	Addr        string `env:"TASKBOARD_HTTP_ADDR" envDefault:":8080"`
	DBPath      string `env:"TASKBOARD_DB_PATH" envDefault:"data/taskboard.db"`
	TokenSecret string `env:"TASKBOARD_TOKEN_SECRET"`
	TokenTTL    string `env:"TASKBOARD_TOKEN_TTL" envDefault:"168h"`
}

// ParseConfig parses environment variables and flags into an app.Config.
// Flags take precedence over the environment. The token secret has no
// default: a process without one refuses to start rather than signing
// tokens with a guessable key.
func ParseConfig(fs *flag.FlagSet, args []string) (app.Config, error) {
	var raw envConfig
	if err := config.ParseEnv(&raw); err != nil {
		return app.Config{}, err
	}

	fs.StringVar(&raw.Addr, "addr", raw.Addr, "HTTP listen address")
	fs.StringVar(&raw.DBPath, "db", raw.DBPath, "SQLite database path")
	if err := fs.Parse(args); err != nil {
		return app.Config{}, err
	}

	secret := strings.TrimSpace(raw.TokenSecret)
	if secret == "" {
		return app.Config{}, fmt.Errorf("TASKBOARD_TOKEN_SECRET is required")
	}

	ttl := token.DefaultTTL
	if trimmed := strings.TrimSpace(raw.TokenTTL); trimmed != "" {
		parsed, err := time.ParseDuration(trimmed)
		if err != nil {
			return app.Config{}, fmt.Errorf("parse TASKBOARD_TOKEN_TTL: %w", err)
		}
		if parsed <= 0 {
			return app.Config{}, fmt.Errorf("TASKBOARD_TOKEN_TTL must be positive")
		}
		ttl = parsed
	}

	return app.Config{
		Addr:        raw.Addr,
		DBPath:      raw.DBPath,
		TokenSecret: []byte(secret),
		TokenTTL:    ttl,
	}, nil
}

// Run starts the task server.
func Run(ctx context.Context, cfg app.Config) error {
	return app.Run(ctx, cfg)
}
