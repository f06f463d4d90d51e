// Package ws streams desktop state over a WebSocket.
//
// A connection receives a welcome message, then every filesystem change as
// an fs_changed message so open windows can refresh. Clients may run
// terminal lines and service tools over the same socket.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//   - terminal_exec: Run one line in a terminal session
//   - execute: Run a service tool
//
// Message Types (Server → Client):
//   - system: Welcome message
//   - pong: Keep-alive reply
//   - fs_changed: Filesystem mutation
//   - terminal_output: Rendered lines, prompt and cwd
//   - result: Service tool result
//   - error: Error occurred
//
// Example Usage:
//
//	handler := ws.NewHandler(fs, terminals, registry, metrics, logger)
//	router.GET("/stream", handler.HandleConnection)
package ws
