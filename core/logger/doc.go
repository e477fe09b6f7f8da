// Package logger provides structured logging based on Zap.
//
// Debug level selects Zap's development preset, every other level the
// production preset. Format chooses json or colored console output.
//
// # Request Correlation
//
// WithRayID attaches the ray_id stored by the rayid middleware, so every log
// line of one reconcile request can be grouped.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Reconcile failed", zap.Error(err))
package logger
