package vfs

import (
	"strings"
)

// Normalize turns a raw path into canonical segments, resolving relative paths against
// cwd. A ".." at the top of the tree is dropped rather than reported.
func Normalize(raw, cwd string) []string {
	reference := strings.TrimSpace(raw)
	if reference == "" {
		reference = "."
	}
	formatted := strings.ReplaceAll(reference, `\`, "/")

	base := formatted
	if !strings.HasPrefix(formatted, "/") {
		if cwd == "" {
			cwd = "/"
		}
		base = cwd + "/" + formatted
	}

	segments := make([]string, 0, strings.Count(base, "/"))
	for _, part := range strings.Split(base, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, part)
		}
	}
	return segments
}

// ToPath renders segments as an absolute path.
func ToPath(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

// Resolve canonicalizes raw against cwd.
func Resolve(raw, cwd string) string {
	return ToPath(Normalize(raw, cwd))
}

// Base returns the last segment of path, or "/" for the root.
func Base(path string) string {
	segments := Normalize(path, "/")
	if len(segments) == 0 {
		return "/"
	}
	return segments[len(segments)-1]
}

// Dir returns the parent directory of path.
func Dir(path string) string {
	segments := Normalize(path, "/")
	if len(segments) == 0 {
		return "/"
	}
	return ToPath(segments[:len(segments)-1])
}

// Ext returns the lower-cased extension of the base name without the dot.
func Ext(path string) string {
	name := Base(path)
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// DisplayPath abbreviates the home directory as "~".
func DisplayPath(path, home string) string {
	if home == "" || home == "/" {
		return path
	}
	if path == home {
		return "~"
	}
	if strings.HasPrefix(path, home+"/") {
		return "~/" + path[len(home)+1:]
	}
	return path
}

// ExpandHome expands a leading "~" to home. Blank input yields "".
func ExpandHome(input, home string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if trimmed == "~" {
		return home
	}
	if strings.HasPrefix(trimmed, "~/") {
		expanded := home + "/" + trimmed[2:]
		for strings.Contains(expanded, "//") {
			expanded = strings.ReplaceAll(expanded, "//", "/")
		}
		return expanded
	}
	return trimmed
}
