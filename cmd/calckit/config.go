package main

import (
	"github.com/dmitrymomot/calckit/pkg/httpserver"
	"github.com/dmitrymomot/calckit/pkg/ratelimiter"
)

// Config is the process configuration read from the environment.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"calckit"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	StrictFields  bool   `env:"VALIDATION_STRICT_FIELDS" envDefault:"false"`
	TemplatesFile string `env:"VALIDATION_TEMPLATES_FILE"`

	// ClientIPHeaders are the proxy headers trusted for the client address.
	ClientIPHeaders []string `env:"HTTP_CLIENT_IP_HEADERS" envSeparator:","`

	HTTP      httpserver.Config
	RateLimit ratelimiter.Config
}
