// Package config provides functionality for managing configuration options
// for the client using command-line flags and environment variables.
package config

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Options holds the configuration values for the client.
type Options struct {
	// BaseURL is the versioned root of the storefront REST API.
	BaseURL string `env:"TIENDA_API_URL, default=http://localhost:8080/api/v1"`

	// StatePath is where the session state file (token + profile) lives.
	// When empty, a per-user default under the OS config dir is used.
	StatePath string `env:"TIENDA_STATE_PATH"`

	// Timeout bounds every HTTP request.
	Timeout time.Duration `env:"TIENDA_HTTP_TIMEOUT, default=15s"`

	// LogLevel is the minimum zap level: debug, info, warn, error.
	LogLevel string `env:"TIENDA_LOG_LEVEL, default=info"`
}

// options holds the current configuration values.
var options = &Options{}

var (
	flagURL   = flag.String("url", "", "storefront API base URL")
	flagState = flag.String("state", "", "path to the session state file")
	flagLevel = flag.String("log-level", "", "log level: debug, info, warn, error")
)

// Parse processes environment variables and command-line flags (flags win)
// and returns the resulting Options.
func Parse() *Options {
	if err := envconfig.Process(context.Background(), options); err != nil {
		log.Fatalf("error while reading configuration: %v", err)
	}

	flag.Parse()

	if *flagURL != "" {
		options.BaseURL = *flagURL
	}
	if *flagState != "" {
		options.StatePath = *flagState
	}
	if *flagLevel != "" {
		options.LogLevel = *flagLevel
	}

	if options.StatePath == "" {
		options.StatePath = defaultStatePath()
	}

	return options
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tienda-state.json"
	}
	return filepath.Join(dir, "tienda", "state.json")
}
