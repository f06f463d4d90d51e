// Package auth gates the desktop behind its lock screen.
//
// There is a single desktop user. The configured password is kept only as a bcrypt
// hash. A successful login returns an HS256 JWT signed with a per-process key; the
// HTTP layer accepts it as a bearer token. Logout revokes the token id, so a
// signed token is honoured only while its session is live.
package auth
