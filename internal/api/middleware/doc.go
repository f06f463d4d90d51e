// Package middleware holds the gin middleware shared by the HTTP and stream routes:
// CORS, per-client rate limiting and the optional login gate.
package middleware
