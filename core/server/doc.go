// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from this configuration; features only
// register routes on it.
package server
