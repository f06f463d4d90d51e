// Package types provides the data structures shared by the desktop backend.
//
// Core Types:
//   - Service, Tool, Parameter: provider definitions served by discovery
//   - Context: the window or terminal session a call originates from
//   - Result: standard operation result, built with Success and Failure
//
// Request Types:
//   - ExecuteRequest, DiscoverRequest: service registry calls
//   - LoginRequest: desktop login
//   - WSMessage: stream protocol frames
//
// Example Usage:
//
//	result, err := registry.Execute(ctx, "filesystem.read", map[string]interface{}{
//	    "path": "~/Desktop/Welcome.md",
//	}, &types.Context{WindowID: &winID})
package types
