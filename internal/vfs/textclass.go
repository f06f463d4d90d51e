package vfs

// TextExtensions lists the extensions opened as editable text. Everything else is
// an opaque blob.
var TextExtensions = map[string]struct{}{
	"txt": {}, "md": {}, "markdown": {}, "log": {}, "json": {},
	"js": {}, "ts": {}, "py": {}, "html": {}, "css": {},
	"sh": {}, "conf": {}, "ini": {}, "yaml": {}, "yml": {},
}

// IsText reports whether path has a text extension. Case is ignored.
func IsText(path string) bool {
	_, ok := TextExtensions[Ext(path)]
	return ok
}
