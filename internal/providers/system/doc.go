// Package system reports device information and keeps the desktop system log.
//
// Log entries are held in a ring buffer for structured queries and appended to
// /var/log/syslog in the virtual filesystem, where the terminal and file browser
// can read them.
package system
