// Package main is the entry point for the Ubuntu Web Desktop backend.
//
// The server hosts one shared virtual filesystem and the desktop services
// built on it: terminal sessions, the file manager, the text editor, the
// browser, settings, login and system info. The frontend talks to it over
// REST and a single WebSocket stream.
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode
//	./server -port 8000 -seed desktop.yaml
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
