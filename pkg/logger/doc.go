// Package logger builds *slog.Logger values for calckit services and
// provides attribute helpers so field names stay consistent in every log
// record (calculator, field, template, request_id, ...).
//
// New applies functional options on top of production-safe defaults (JSON at
// info level on stdout). WithEnvironment switches to the preset for the
// current deployment environment. The resulting handler is wrapped with
// LogHandlerDecorator which runs every registered ContextExtractor when a
// record is handled, for example to add the request id stored by the
// requestid middleware:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "calckit"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "calculation finished", logger.Calculator("cutting"))
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check.
package logger
