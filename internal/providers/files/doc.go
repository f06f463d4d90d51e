// Package files implements the file browser windows.
//
// Each window is a Navigator with its own back/forward stack over the shared
// filesystem. Navigators subscribe to filesystem change events and bump a revision
// counter whenever something inside the directory they show changes, so a client
// knows when to fetch the view again.
package files
