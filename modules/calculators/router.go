package calculators

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/calckit/handler"
	"github.com/dmitrymomot/calckit/pkg/clientip"
	"github.com/dmitrymomot/calckit/pkg/httpserver"
	"github.com/dmitrymomot/calckit/pkg/logger"
	"github.com/dmitrymomot/calckit/pkg/ratelimiter"
	"github.com/dmitrymomot/calckit/pkg/requestid"
)

// RouterOption configures Router.
type RouterOption func(*routerConfig)

type routerConfig struct {
	limiter   *ratelimiter.Limiter
	ipHeaders []string
}

// WithRateLimiter throttles /api/v1 per client IP. Health checks are never
// limited.
func WithRateLimiter(l *ratelimiter.Limiter) RouterOption {
	return func(c *routerConfig) { c.limiter = l }
}

// WithClientIPHeaders sets the proxy headers trusted for the client IP.
func WithClientIPHeaders(headers ...string) RouterOption {
	return func(c *routerConfig) { c.ipHeaders = headers }
}

// Router mounts the service under /api/v1 next to GET /health, behind
// request id, client IP, panic recovery and access log middleware.
//
//	r := calculators.Router(calculators.NewService(registry, templates, log), log)
//	srv.Run(ctx, r)
func Router(svc *Service, log *slog.Logger, opts ...RouterOption) chi.Router {
	if log == nil {
		log = logger.Discard()
	}
	var cfg routerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware(cfg.ipHeaders...))
	r.Use(middleware.Recoverer)
	r.Use(accessLog(log))

	r.Get("/health", httpserver.Health(log))
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.limiter != nil {
			r.Use(ratelimiter.Middleware(cfg.limiter, clientKey, denyTooMany))
		}
		r.Mount("/", svc.Handle())
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrNotFound).Render(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrMethodNotAllowed).Render(w, r)
	})
	return r
}

func clientKey(r *http.Request) string {
	return clientip.FromContext(r.Context())
}

func denyTooMany(w http.ResponseWriter, r *http.Request, err error) {
	_ = handler.JSONError(fmt.Errorf("%w: %w", handler.ErrTooManyRequests, err)).Render(w, r)
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			level := slog.LevelInfo
			if ww.Status() >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
