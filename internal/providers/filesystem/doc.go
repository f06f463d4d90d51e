// Package filesystem exposes the shared desktop filesystem as a service.
//
// This package is organized into specialized modules:
//   - basic: read, write, append, create, delete, exists
//   - directory: list, mkdir, resolve, walk, tree
//   - operations: copy, move, rename built from the primitive operations
//   - metadata: stat, sizes, MIME and charset detection
//   - search: glob, name and content search, recent files
//   - formats: JSON, YAML and TOML documents
//   - archives: tar export and import with gzip or zstd compression
//
// Paths may be absolute, relative to the optional "cwd" parameter, or start with
// "~". Relative paths without a cwd start at the desktop user's home. Failures are
// reported as unsuccessful results carrying the filesystem's user-facing message.
//
// Example Usage:
//
//	p := filesystem.NewProvider(fs, "/home/ubuntu")
//	result, err := p.Execute(ctx, "filesystem.glob", map[string]interface{}{"pattern": "**/*.md"}, nil)
package filesystem
