// Package server wires and runs the application's HTTP transport,
// including startup, signal handling, and graceful shutdown.
package server
