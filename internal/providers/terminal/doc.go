// Package terminal exposes simulated shell sessions as a service.
//
// Every session owns its own command interpreter (working directory, history,
// history cursor) while all sessions share the desktop's single virtual filesystem.
// Rendered lines are returned from each call and also kept in a bounded per-session
// buffer so a terminal window can poll for output it missed.
//
// Tools:
//   - terminal.create_session: start a session in the home directory
//   - terminal.execute: run one input line
//   - terminal.read: drain buffered output lines
//   - terminal.history: list recorded input
//   - terminal.history_prev / terminal.history_next: move the history cursor
//   - terminal.list_sessions / terminal.get_session: inspect sessions
//   - terminal.kill: end a session
package terminal
