// Package httpserver runs the calckit HTTP API with configured timeouts and
// graceful shutdown.
//
// Server.Run listens on Config.Addr and blocks until the context is cancelled
// or the process receives SIGINT or SIGTERM. It then calls Shutdown, which
// waits up to Config.ShutdownTimeout for in-flight requests. Request bodies
// are capped at Config.MaxBodyBytes.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.New(cfg, log)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Health returns a liveness or readiness handler for /health.
//
// Errors are wrapped with the ErrStart and ErrShutdown sentinels.
package httpserver
