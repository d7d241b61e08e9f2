// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers with stable keys.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler from the configured
// Format and wraps it in LogHandlerDecorator, which adds attributes pulled
// from the record context by registered ContextExtractor callbacks.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(logger.ParseEnvironment(cfg.Env), "fanout"),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//	logger.SetAsDefault(log)
//
//	log.Info("worker finished",
//	    logger.Worker(w.Name()),
//	    logger.Duration(time.Since(start)),
//	    logger.Error(err),
//	)
//
// Error, Panic, Stack and WorkerID return an empty Attr for zero input, which
// slog drops, so they can be passed without a nil check.
package logger
