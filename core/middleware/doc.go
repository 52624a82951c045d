// Package middleware groups the Fiber middleware of the HTTP server.
//
//   - auth: rejects requests without the configured API key.
//   - rayid: assigns every request a RayID, stored in the context locals and
//     echoed in the X-Ray-ID response header for tracing.
//
// RayID must be registered before any middleware that logs.
package middleware
