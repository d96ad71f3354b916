// Command calckit serves the laser cutting calculators over HTTP or fills
// one interactively in the terminal.
//
// Usage:
//
//	calckit [serve]
//	calckit prompt <calculator>
//
// # Configuration
//
// Environment variables, also read from ./.env:
//
//	APP_NAME                   - service name in log records (default: "calckit")
//	ENV                        - development, staging or production (default: "development")
//	LOG_LEVEL                  - overrides the environment's log level
//	VALIDATION_STRICT_FIELDS   - reject fields a form does not declare (default: false)
//	VALIDATION_TEMPLATES_FILE  - YAML file with extra or replacement templates
//	HTTP_ADDR                  - listen address (default: ":8080")
//	HTTP_MAX_BODY_BYTES        - request body limit (default: 1MiB)
//	HTTP_CLIENT_IP_HEADERS     - comma separated proxy headers trusted for the client IP
//	RATE_LIMIT_ENABLED         - throttle the API per client IP (default: true)
//	RATE_LIMIT_BURST           - requests allowed in a burst (default: 60)
//	RATE_LIMIT_REFILL          - requests regained per interval (default: 1)
//	RATE_LIMIT_INTERVAL        - refill interval (default: "1s")
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/calckit/modules/calculators"
	"github.com/dmitrymomot/calckit/pkg/calculator"
	"github.com/dmitrymomot/calckit/pkg/clientip"
	"github.com/dmitrymomot/calckit/pkg/config"
	"github.com/dmitrymomot/calckit/pkg/httpserver"
	"github.com/dmitrymomot/calckit/pkg/logger"
	"github.com/dmitrymomot/calckit/pkg/prompt"
	"github.com/dmitrymomot/calckit/pkg/ratelimiter"
	"github.com/dmitrymomot/calckit/pkg/requestid"
	"github.com/dmitrymomot/calckit/pkg/validator"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: calckit [serve] | calckit prompt <calculator>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(flag.Args()); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "calckit:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.AppName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	templates, err := loadTemplates(cfg.TemplatesFile)
	if err != nil {
		return err
	}

	formOpts := []validator.Option{
		validator.WithTemplates(templates),
		validator.WithLogger(log),
	}
	if cfg.StrictFields {
		formOpts = append(formOpts, validator.WithStrictFields())
	}
	registry := calculator.NewRegistry(
		calculator.WithFormOptions(formOpts...),
		calculator.WithLogger(log),
	)

	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "serve":
		return serve(ctx, cfg, log, registry, templates)
	case "prompt":
		if len(args) != 1 {
			return errors.New("prompt needs exactly one calculator name")
		}
		return ask(ctx, log, registry, args[0])
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func loadTemplates(path string) (validator.Templates, error) {
	templates := validator.DefaultTemplates()
	if path == "" {
		return templates, nil
	}
	extra, err := validator.LoadTemplatesFile(path)
	if err != nil {
		return nil, err
	}
	return templates.Merge(extra), nil
}

func serve(ctx context.Context, cfg Config, log *slog.Logger, registry *calculator.Registry, templates validator.Templates) error {
	opts := []calculators.RouterOption{calculators.WithClientIPHeaders(cfg.ClientIPHeaders...)}
	if cfg.RateLimit.Enabled {
		limiter, err := ratelimiter.New(cfg.RateLimit)
		if err != nil {
			return err
		}
		defer limiter.Close()
		opts = append(opts, calculators.WithRateLimiter(limiter))
	}

	svc := calculators.NewService(registry, templates, log)
	srv := httpserver.New(cfg.HTTP, log)
	return srv.Run(ctx, calculators.Router(svc, log, opts...))
}

func ask(ctx context.Context, log *slog.Logger, registry *calculator.Registry, name string) error {
	calc, err := registry.Get(name)
	if err != nil {
		return err
	}

	inputs, err := prompt.New(prompt.NewSurveyDriver(os.Stdout), prompt.WithLogger(log)).Ask(ctx, calc.Form())
	if err != nil {
		return err
	}

	out, err := registry.Run(ctx, name, inputs)
	if err != nil {
		if verrs := validator.ExtractValidationErrors(err); verrs != nil {
			for _, e := range verrs {
				fmt.Fprintf(os.Stderr, "%s: %s\n", e.Field, e.Message)
			}
		}
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
