// Package settings holds the desktop appearance preferences: wallpaper, accent theme
// and the panel clock format. Values can be persisted as JSON into the virtual
// filesystem and exported or imported as a document.
package settings
