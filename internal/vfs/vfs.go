package vfs

import (
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// MutationRecorder receives one call per mutating operation.
type MutationRecorder interface {
	RecordVFSMutation(op string, status string)
}

// FileSystem is the shared in-memory tree. Calls are serialized; observers run after
// the tree lock is released.
type FileSystem struct {
	mu       sync.Mutex
	root     *Directory
	collator *collate.Collator
	now      func() time.Time
	logger   *zap.Logger
	recorder MutationRecorder

	obsMu     sync.RWMutex
	observers map[SubscriptionID]Observer
	nextSub   SubscriptionID
}

// New creates a filesystem and applies seed. Directory failures during seeding are
// logged and skipped.
func New(seed *Seed, logger *zap.Logger) *FileSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	fs := &FileSystem{
		collator:  collate.New(language.English),
		now:       time.Now,
		logger:    logger.Named("vfs"),
		observers: make(map[SubscriptionID]Observer),
	}
	fs.root = newDirectory("", fs.now())

	if seed != nil {
		fs.apply(seed)
	}
	return fs
}

// WithClock replaces the timestamp source. Intended for tests.
func (fs *FileSystem) WithClock(now func() time.Time) *FileSystem {
	fs.now = now
	return fs
}

// WithRecorder attaches a metrics recorder.
func (fs *FileSystem) WithRecorder(r MutationRecorder) *FileSystem {
	fs.recorder = r
	return fs
}

func (fs *FileSystem) apply(seed *Seed) {
	for _, dir := range seed.Directories {
		if _, err := fs.MakeDir(dir, "/"); err != nil {
			fs.logger.Warn("seed directory skipped", zap.String("path", dir), zap.Error(err))
		}
	}
	for _, path := range seed.sortedFiles() {
		if _, err := fs.WriteFile(path, "/", seed.Files[path]); err != nil {
			fs.logger.Warn("seed file skipped", zap.String("path", path), zap.Error(err))
		}
	}
}

// Resolve canonicalizes path against cwd.
func (fs *FileSystem) Resolve(path, cwd string) string {
	return Resolve(path, cwd)
}

// MakeDir creates every missing directory along path. Existing directories are reused.
func (fs *FileSystem) MakeDir(path, cwd string) (string, error) {
	segments := Normalize(path, cwd)
	resolved := ToPath(segments)

	fs.mu.Lock()
	_, err := fs.ensureDirectory(OpMakeDir, segments)
	fs.mu.Unlock()

	return resolved, fs.finish(OpMakeDir, resolved, err)
}

// Touch creates an empty file or refreshes the timestamp of an existing node.
func (fs *FileSystem) Touch(path, cwd string) (string, error) {
	segments := Normalize(path, cwd)
	resolved := ToPath(segments)
	if len(segments) == 0 {
		return resolved, fs.finish(OpTouch, resolved,
			pathError("touch", resolved, ErrInvalidPath, "Cannot touch root directory."))
	}

	fs.mu.Lock()
	err := fs.touch(segments)
	fs.mu.Unlock()

	return resolved, fs.finish(OpTouch, resolved, err)
}

func (fs *FileSystem) touch(segments []string) error {
	name := segments[len(segments)-1]
	dir, err := fs.ensureDirectory(OpTouch, segments[:len(segments)-1])
	if err != nil {
		return err
	}

	now := fs.now()
	switch n := dir.children[name].(type) {
	case nil:
		dir.children[name] = newFile(name, "", now)
	case *File:
		n.modifiedAt = now
	case *Directory:
		n.modifiedAt = now
	}
	dir.modifiedAt = now
	return nil
}

// WriteFile replaces the file at path with content, creating parents as needed.
func (fs *FileSystem) WriteFile(path, cwd, content string) (string, error) {
	segments := Normalize(path, cwd)
	resolved := ToPath(segments)
	if len(segments) == 0 {
		return resolved, fs.finish(OpWrite, resolved,
			pathError("write", resolved, ErrInvalidPath, "Invalid file path."))
	}

	fs.mu.Lock()
	err := fs.write(segments, resolved, content)
	fs.mu.Unlock()

	return resolved, fs.finish(OpWrite, resolved, err)
}

func (fs *FileSystem) write(segments []string, resolved, content string) error {
	name := segments[len(segments)-1]
	dir, err := fs.ensureDirectory(OpWrite, segments[:len(segments)-1])
	if err != nil {
		return err
	}
	if _, isDir := dir.children[name].(*Directory); isDir {
		return pathError("write", resolved, ErrConflict, "Path conflicts with an existing directory.")
	}

	now := fs.now()
	dir.children[name] = newFile(name, content, now)
	dir.modifiedAt = now
	return nil
}

// ReadFile returns the content of the file at path.
func (fs *FileSystem) ReadFile(path, cwd string) (string, error) {
	segments := Normalize(path, cwd)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	file, ok := fs.lookup(segments).(*File)
	if !ok {
		return "", pathError("read", ToPath(segments), ErrNotFound, "File not found.")
	}
	return file.content, nil
}

// List returns the children of the directory at path: directories first, then files,
// each group in collation order.
func (fs *FileSystem) List(path, cwd string) ([]Entry, error) {
	segments := Normalize(path, cwd)
	resolved := ToPath(segments)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	switch n := fs.lookup(segments).(type) {
	case nil:
		return nil, pathError("list", resolved, ErrNotFound, "Directory not found.")
	case *File:
		return nil, pathError("list", resolved, ErrNotADirectory, "Not a directory.")
	case *Directory:
		return fs.entries(n, segments), nil
	default:
		panic("vfs: unknown node type")
	}
}

type child struct {
	name string
	node Node
}

// children returns dir's children in listing order: directories first, then files,
// each collated by name.
func (fs *FileSystem) children(dir *Directory) []child {
	out := make([]child, 0, len(dir.children))
	for name, node := range dir.children {
		out = append(out, child{name: name, node: node})
	}
	sort.SliceStable(out, func(i, j int) bool {
		_, iDir := out[i].node.(*Directory)
		_, jDir := out[j].node.(*Directory)
		if iDir != jDir {
			return iDir
		}
		return fs.collator.CompareString(out[i].name, out[j].name) < 0
	})
	return out
}

func (fs *FileSystem) entries(dir *Directory, segments []string) []Entry {
	kids := fs.children(dir)
	entries := make([]Entry, 0, len(kids))
	for _, c := range kids {
		entries = append(entries, entryFor(c.node, childPath(segments, c.name)))
	}
	return entries
}

// Remove unlinks a file or an empty directory.
func (fs *FileSystem) Remove(path, cwd string) error {
	segments := Normalize(path, cwd)
	resolved := ToPath(segments)
	if len(segments) == 0 {
		return fs.finish(OpRemove, resolved,
			pathError("remove", resolved, ErrInvalidPath, "Cannot remove root."))
	}

	fs.mu.Lock()
	err := fs.remove(segments, resolved)
	fs.mu.Unlock()

	return fs.finish(OpRemove, resolved, err)
}

func (fs *FileSystem) remove(segments []string, resolved string) error {
	name := segments[len(segments)-1]
	dir, ok := fs.lookup(segments[:len(segments)-1]).(*Directory)
	if !ok {
		return pathError("remove", resolved, ErrNotFound, "Path not found.")
	}

	switch n := dir.children[name].(type) {
	case nil:
		return pathError("remove", resolved, ErrNotFound, "Path not found.")
	case *Directory:
		if len(n.children) > 0 {
			return pathError("remove", resolved, ErrDirectoryNotEmpty, "Directory not empty.")
		}
	case *File:
	}

	delete(dir.children, name)
	dir.modifiedAt = fs.now()
	return nil
}

// Stat describes the node at path. The boolean is false when nothing exists there.
func (fs *FileSystem) Stat(path, cwd string) (Entry, bool) {
	segments := Normalize(path, cwd)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	node := fs.lookup(segments)
	if node == nil {
		return Entry{}, false
	}
	return entryFor(node, ToPath(segments)), true
}

// FileExists reports whether path names a file.
func (fs *FileSystem) FileExists(path, cwd string) bool {
	entry, ok := fs.Stat(path, cwd)
	return ok && entry.Type == TypeFile
}

// DirectoryExists reports whether path names a directory.
func (fs *FileSystem) DirectoryExists(path, cwd string) bool {
	entry, ok := fs.Stat(path, cwd)
	return ok && entry.Type == TypeDirectory
}

// WalkFunc is called for every node below the walk root. Returning SkipDir from a
// directory skips its children; any other error stops the walk.
type WalkFunc func(entry Entry) error

// Walk visits the node at path and everything beneath it in listing order. The tree is
// snapshotted first, so fn may call back into the filesystem.
func (fs *FileSystem) Walk(path, cwd string, fn WalkFunc) error {
	segments := Normalize(path, cwd)

	visited, err := fs.snapshot(segments)
	if err != nil {
		return err
	}

	skipping := ""
	for _, entry := range visited {
		if skipping != "" && (entry.Path == skipping || hasPathPrefix(entry.Path, skipping)) {
			continue
		}
		skipping = ""
		if err := fn(entry); err != nil {
			if errors.Is(err, SkipDir) && entry.IsDir() {
				skipping = entry.Path
				continue
			}
			return err
		}
	}
	return nil
}

func (fs *FileSystem) snapshot(segments []string) ([]Entry, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	node := fs.lookup(segments)
	if node == nil {
		return nil, pathError("walk", ToPath(segments), ErrNotFound, "Path not found.")
	}
	var visited []Entry
	fs.collect(node, segments, &visited)
	return visited, nil
}

func (fs *FileSystem) collect(node Node, segments []string, out *[]Entry) {
	*out = append(*out, entryFor(node, ToPath(segments)))
	dir, ok := node.(*Directory)
	if !ok {
		return
	}
	for _, c := range fs.children(dir) {
		childSegments := append(append([]string(nil), segments...), c.name)
		fs.collect(c.node, childSegments, out)
	}
}

// lookup walks segments from the root. Traversal through a file yields nil.
func (fs *FileSystem) lookup(segments []string) Node {
	var node Node = fs.root
	for _, segment := range segments {
		dir, ok := node.(*Directory)
		if !ok {
			return nil
		}
		child, ok := dir.children[segment]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// ensureDirectory creates missing directories along segments. Conflicts are
// reported under op.
func (fs *FileSystem) ensureDirectory(op Op, segments []string) (*Directory, error) {
	dir := fs.root
	for i, segment := range segments {
		switch child := dir.children[segment].(type) {
		case nil:
			now := fs.now()
			created := newDirectory(segment, now)
			dir.children[segment] = created
			dir.modifiedAt = now
			dir = created
		case *Directory:
			dir = child
		case *File:
			return nil, pathError(string(op), ToPath(segments[:i+1]), ErrConflict, "Path conflicts with an existing file.")
		}
	}
	return dir, nil
}

func (fs *FileSystem) finish(op Op, resolved string, err error) error {
	status := "success"
	if err != nil {
		status = "error"
	}
	if fs.recorder != nil {
		fs.recorder.RecordVFSMutation(string(op), status)
	}
	if err != nil {
		fs.logger.Debug("filesystem mutation failed",
			zap.String("op", string(op)),
			zap.String("path", resolved),
			zap.Error(err),
		)
		return err
	}

	fs.publish(Event{
		Op:     op,
		Path:   resolved,
		Parent: Dir(resolved),
		Time:   fs.now(),
	})
	return nil
}

func childPath(segments []string, name string) string {
	if len(segments) == 0 {
		return "/" + name
	}
	return ToPath(segments) + "/" + name
}

func hasPathPrefix(path, prefix string) bool {
	if prefix == "/" {
		return true
	}
	return len(path) > len(prefix) && path[:len(prefix)] == prefix && path[len(prefix)] == '/'
}

// Counts returns the number of files and directories in the tree, root included.
func (fs *FileSystem) Counts() (files, dirs int) {
	_ = fs.Walk("/", "/", func(e Entry) error {
		if e.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})
	return files, dirs
}
