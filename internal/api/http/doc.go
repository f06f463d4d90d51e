/*
Package http provides the desktop's HTTP handlers.

# Routes

	GET  /                   service banner
	GET  /health             registry and filesystem status
	GET  /services           list services, optional ?category=
	POST /services/discover  rank services for an intent
	POST /services/execute   run a tool
	POST /auth/login         unlock the desktop
	POST /auth/logout        revoke the bearer token
	POST /logs               ingest frontend log batches
	GET  /logs               recent system log entries
	GET  /metrics/json       metrics snapshot

Tool failures are reported in the result body with status 200. Malformed requests
are 400 and registry errors are 500.
*/
package http
