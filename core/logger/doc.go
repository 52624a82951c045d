// Package logger builds the zap logger shared by the CLI and the HTTP server.
//
// Debug level selects the zap development preset; every other level selects the
// production preset at that level. Records are encoded as json or console.
//
// HTTP handlers tag their entries with the request RayID through WithRayID so
// that every line of one request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "json"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
