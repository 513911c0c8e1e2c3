// Package logger provides the process-wide zap logger and context scoping
// used by every stage of the notification pipeline.
//
// Initialise once in main:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "notifyd"})
//	defer logger.Sync()
//
// Inside handlers and services prefer the request-scoped logger:
//
//	log := logger.From(ctx).With(logger.Op("Dispatch"), logger.EventType(string(t)))
//	log.Info("message sent", logger.MessageID(id))
//
// Without a context, L() falls back to the singleton.
package logger
