package editor

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// Fixed editor texts.
const (
	UntitledLabel     = "Unsaved document"
	DefaultDraft      = "# Notes\n\nStart typing..."
	DefaultSaveTarget = "~/Documents/notes.txt"

	StatusReady       = "Ready."
	StatusRecovered   = "Recovered unsaved document from previous session."
	StatusUnsaved     = "Unsaved changes"
	StatusSaveCancel  = "Save cancelled."
	StatusOpenCancel  = "Open cancelled."
	StatusNotFound    = "File not found."
	StatusTextOnly    = "Only plain text files are supported."
	StatusRemoved     = "File was removed from disk."
	StatusDiskChanged = "File changed on disk."
)

// State is a snapshot of the document.
type State struct {
	Path           string `json:"path,omitempty"`
	Label          string `json:"label"`
	Content        string `json:"content"`
	Status         string `json:"status"`
	Dirty          bool   `json:"dirty"`
	Detached       bool   `json:"detached"`
	SaveSuggestion string `json:"save_suggestion"`
	OpenSuggestion string `json:"open_suggestion"`
}

// Editor holds one document. Methods are safe for concurrent use.
type Editor struct {
	fs     *vfs.FileSystem
	home   string
	logger *zap.Logger
	sub    vfs.SubscriptionID

	mu       sync.Mutex
	path     string
	content  string
	status   string
	dirty    bool
	detached bool
	draft    string
}

// New creates an editor showing a fresh document and starts watching fs.
func New(fs *vfs.FileSystem, home string, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if home == "" {
		home = "/"
	}
	e := &Editor{
		fs:     fs,
		home:   vfs.Resolve(home, "/"),
		logger: logger.Named("editor"),
	}
	e.reset()
	e.sub = fs.Subscribe(e.observe)
	return e
}

// Close stops watching the filesystem.
func (e *Editor) Close() {
	e.fs.Unsubscribe(e.sub)
}

// New starts an untitled document, recovering the unsaved draft when there is one.
func (e *Editor) New() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset()
	return e.state()
}

// reset requires e.mu held or exclusive access.
func (e *Editor) reset() {
	e.path, e.dirty, e.detached = "", false, false
	if e.draft != "" {
		e.content, e.status = e.draft, StatusRecovered
		return
	}
	e.content, e.status = DefaultDraft, StatusReady
}

// Open loads path, which must be a canonical path to an existing text file.
func (e *Editor) Open(path string) error {
	resolved := vfs.Resolve(path, "/")
	if !e.fs.FileExists(resolved, "/") {
		return fmt.Errorf("File not found: %s", path)
	}
	if !vfs.IsText(resolved) {
		return fmt.Errorf("Cannot open %s in the text editor.", vfs.Base(resolved))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.load(resolved)
	return nil
}

// OpenDialog handles a typed path. "~" expands to home and relative paths start in
// the open file's directory, or home. Problems are reported in the status line.
func (e *Editor) OpenDialog(input string) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	expanded := vfs.ExpandHome(input, e.home)
	if expanded == "" {
		e.status = StatusOpenCancel
		return e.state()
	}

	resolved := vfs.Resolve(expanded, e.baseDir())
	switch {
	case !e.fs.FileExists(resolved, "/"):
		e.status = StatusNotFound
	case !vfs.IsText(resolved):
		e.status = StatusTextOnly
	default:
		e.load(resolved)
	}
	return e.state()
}

// Update replaces the buffer with what the user typed.
func (e *Editor) Update(content string) State {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.content = content
	e.dirty = true
	e.status = StatusUnsaved
	if e.path == "" {
		e.draft = content
	}
	return e.state()
}

// Save writes the buffer to the open file. An untitled document is saved to
// fallback as with SaveAs.
func (e *Editor) Save(fallback string) State {
	e.mu.Lock()
	path, content := e.path, e.content
	e.mu.Unlock()

	if path == "" {
		return e.SaveAs(fallback)
	}
	return e.write(path, content)
}

// SaveAs writes the buffer to a typed path and makes it the open file.
func (e *Editor) SaveAs(input string) State {
	e.mu.Lock()
	expanded := vfs.ExpandHome(input, e.home)
	if expanded == "" {
		e.status = StatusSaveCancel
		defer e.mu.Unlock()
		return e.state()
	}
	resolved := vfs.Resolve(expanded, e.baseDir())
	content := e.content
	e.mu.Unlock()

	return e.write(resolved, content)
}

// write runs without e.mu since the filesystem publishes to e.observe.
func (e *Editor) write(path, content string) State {
	_, err := e.fs.WriteFile(path, "/", content)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.status = err.Error()
		return e.state()
	}
	e.path = path
	e.detached = false
	if e.content == content {
		e.dirty = false
	}
	e.status = "Saved " + vfs.DisplayPath(path, e.home)
	return e.state()
}

// State returns the current document.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state()
}

// load requires e.mu held.
func (e *Editor) load(path string) {
	content, err := e.fs.ReadFile(path, "/")
	if err != nil {
		e.status = err.Error()
		return
	}
	e.path = path
	e.content = content
	e.dirty = false
	e.detached = false
	e.status = "Loaded " + vfs.DisplayPath(path, e.home)
}

// observe reloads or detaches the open file when something else changes it.
func (e *Editor) observe(ev vfs.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.path == "" || ev.Path != e.path {
		return
	}

	switch ev.Op {
	case vfs.OpRemove:
		e.detached = true
		e.status = StatusRemoved
	case vfs.OpWrite, vfs.OpTouch:
		content, err := e.fs.ReadFile(e.path, "/")
		if err != nil || content == e.content {
			return
		}
		if e.dirty {
			e.status = StatusDiskChanged
			return
		}
		e.content = content
		e.detached = false
		e.status = "Reloaded " + vfs.DisplayPath(e.path, e.home)
		e.logger.Debug("reloaded after external write", zap.String("path", e.path))
	}
}

// baseDir requires e.mu held.
func (e *Editor) baseDir() string {
	if e.path != "" {
		return vfs.Dir(e.path)
	}
	return e.home
}

// state requires e.mu held.
func (e *Editor) state() State {
	s := State{
		Path:           e.path,
		Label:          UntitledLabel,
		Content:        e.content,
		Status:         e.status,
		Dirty:          e.dirty,
		Detached:       e.detached,
		SaveSuggestion: DefaultSaveTarget,
		OpenSuggestion: vfs.Resolve("Documents", e.home) + "/",
	}
	if e.path != "" {
		s.Label = vfs.DisplayPath(e.path, e.home)
		s.SaveSuggestion = s.Label
		s.OpenSuggestion = s.Label
	}
	return s
}
