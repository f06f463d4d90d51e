package files

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/id"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// ErrWindowNotFound is returned for unknown or closed window ids.
var ErrWindowNotFound = errors.New("window not found")

// Opener hands text files to the editor.
type Opener interface {
	Open(path string) error
}

// WindowGauge tracks the number of open browser windows.
type WindowGauge interface {
	SetWindowsActive(count int)
}

// Action tells the client what activating an item did.
type Action string

const (
	ActionNavigate Action = "navigate"
	ActionEdit     Action = "edit"
	ActionPreview  Action = "preview"
)

// Activation is the outcome of double-clicking an item.
type Activation struct {
	Action   Action `json:"action"`
	Path     string `json:"path"`
	Notice   string `json:"notice,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	View     *View  `json:"view,omitempty"`
}

// Manager owns the open file browser windows
type Manager struct {
	fs     *vfs.FileSystem
	home   string
	editor Opener
	gauge  WindowGauge
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	windows map[string]*Navigator
}

// NewManager creates a window manager. editor may be nil, in which case text
// files are previewed instead of opened.
func NewManager(fs *vfs.FileSystem, home string, editor Opener, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if home == "" {
		home = "/"
	}
	return &Manager{
		fs:      fs,
		home:    vfs.Resolve(home, "/"),
		editor:  editor,
		logger:  logger.Named("files"),
		now:     time.Now,
		windows: make(map[string]*Navigator),
	}
}

// WithGauge attaches a window gauge
func (m *Manager) WithGauge(g WindowGauge) *Manager {
	m.gauge = g
	return m
}

// Open creates a window showing start, or home when start is empty.
func (m *Manager) Open(start string) (View, error) {
	path := m.home
	if start != "" {
		path = vfs.Resolve(vfs.ExpandHome(start, m.home), m.home)
	}
	if !m.fs.DirectoryExists(path, "/") {
		return View{}, fmt.Errorf("Cannot open %s", start)
	}

	nav := newNavigator(id.NewWindowID().String(), path, m.now())
	nav.sub = m.fs.Subscribe(nav.observe)

	m.mu.Lock()
	m.windows[nav.ID] = nav
	count := len(m.windows)
	m.mu.Unlock()
	m.updateGauge(count)

	m.logger.Debug("window opened", zap.String("window_id", nav.ID), zap.String("path", path))
	return m.view(nav)
}

// Close removes a window and its subscription.
func (m *Manager) Close(windowID string) error {
	m.mu.Lock()
	nav, ok := m.windows[windowID]
	if ok {
		delete(m.windows, windowID)
	}
	count := len(m.windows)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrWindowNotFound, windowID)
	}
	m.fs.Unsubscribe(nav.sub)
	m.updateGauge(count)
	return nil
}

// Windows lists open window ids, oldest first.
func (m *Manager) Windows() []string {
	m.mu.RLock()
	navs := make([]*Navigator, 0, len(m.windows))
	for _, nav := range m.windows {
		navs = append(navs, nav)
	}
	m.mu.RUnlock()

	sort.Slice(navs, func(i, j int) bool {
		if navs[i].OpenedAt.Equal(navs[j].OpenedAt) {
			return navs[i].ID < navs[j].ID
		}
		return navs[i].OpenedAt.Before(navs[j].OpenedAt)
	})
	ids := make([]string, len(navs))
	for i, nav := range navs {
		ids[i] = nav.ID
	}
	return ids
}

// View renders a window.
func (m *Manager) View(windowID string) (View, error) {
	nav, err := m.get(windowID)
	if err != nil {
		return View{}, err
	}
	return m.view(nav)
}

// Navigate opens path, which may be absolute or relative to the current directory.
func (m *Manager) Navigate(windowID, path string) (View, error) {
	nav, err := m.get(windowID)
	if err != nil {
		return View{}, err
	}

	nav.mu.Lock()
	err = m.navigate(nav, path)
	nav.mu.Unlock()
	if err != nil {
		return View{}, err
	}
	return m.view(nav)
}

// navigate requires nav.mu held.
func (m *Manager) navigate(nav *Navigator, path string) error {
	resolved := vfs.Resolve(vfs.ExpandHome(path, m.home), nav.stack[nav.index])
	if !m.fs.DirectoryExists(resolved, "/") {
		return fmt.Errorf("Cannot open %s", path)
	}
	nav.push(resolved)
	return nil
}

// Back moves to the previous directory in the window's history.
func (m *Manager) Back(windowID string) (View, error) {
	return m.step(windowID, (*Navigator).back)
}

// Forward moves to the next directory in the window's history.
func (m *Manager) Forward(windowID string) (View, error) {
	return m.step(windowID, (*Navigator).forward)
}

func (m *Manager) step(windowID string, move func(*Navigator) bool) (View, error) {
	nav, err := m.get(windowID)
	if err != nil {
		return View{}, err
	}

	nav.mu.Lock()
	move(nav)
	nav.mu.Unlock()
	return m.view(nav)
}

// Up navigates to the parent directory. At the root it does nothing.
func (m *Manager) Up(windowID string) (View, error) {
	nav, err := m.get(windowID)
	if err != nil {
		return View{}, err
	}

	nav.mu.Lock()
	current := nav.stack[nav.index]
	if current != "/" {
		err = m.navigate(nav, vfs.Dir(current))
	}
	nav.mu.Unlock()
	if err != nil {
		return View{}, err
	}
	return m.view(nav)
}

// NewFolder creates a directory in the current one. An empty name uses "New Folder".
func (m *Manager) NewFolder(windowID, name string) (string, error) {
	nav, err := m.get(windowID)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = DefaultFolder
	}
	// Mutations publish events that the navigator observes, so no lock is held here.
	return m.fs.MakeDir(name, nav.Current())
}

// NewFile creates an empty file in the current directory and opens it in the editor.
// An empty name uses "New Document.txt".
func (m *Manager) NewFile(windowID, name string) (string, error) {
	nav, err := m.get(windowID)
	if err != nil {
		return "", err
	}
	if name == "" {
		name = DefaultFile
	}

	resolved, err := m.fs.Touch(name, nav.Current())
	if err != nil {
		return "", err
	}
	if _, err := m.fs.WriteFile(resolved, "/", ""); err != nil {
		return "", err
	}

	if m.editor != nil && vfs.IsText(resolved) {
		if err := m.editor.Open(resolved); err != nil {
			m.logger.Warn("editor refused new file", zap.String("path", resolved), zap.Error(err))
		}
	}
	return resolved, nil
}

// Activate opens an item: directories navigate, text files go to the editor and
// anything else produces a short preview notice.
func (m *Manager) Activate(windowID, path string) (Activation, error) {
	nav, err := m.get(windowID)
	if err != nil {
		return Activation{}, err
	}

	resolved := vfs.Resolve(vfs.ExpandHome(path, m.home), nav.Current())
	entry, ok := m.fs.Stat(resolved, "/")
	if !ok {
		return Activation{}, fmt.Errorf("Cannot open %s", path)
	}

	if entry.IsDir() {
		view, err := m.Navigate(windowID, resolved)
		if err != nil {
			return Activation{}, err
		}
		return Activation{Action: ActionNavigate, Path: resolved, View: &view}, nil
	}

	if m.editor != nil && vfs.IsText(resolved) {
		if err := m.editor.Open(resolved); err != nil {
			return Activation{}, err
		}
		return Activation{Action: ActionEdit, Path: resolved}, nil
	}

	content, err := m.fs.ReadFile(resolved, "/")
	if err != nil {
		return Activation{}, err
	}
	return Activation{
		Action:   ActionPreview,
		Path:     resolved,
		Notice:   Preview(resolved, content),
		MimeType: mimeOf(content),
	}, nil
}

func (m *Manager) view(nav *Navigator) (View, error) {
	nav.mu.RLock()
	current := nav.stack[nav.index]
	v := View{
		WindowID:   nav.ID,
		Path:       current,
		Label:      Label(current),
		CanBack:    nav.index > 0,
		CanForward: nav.index < len(nav.stack)-1,
		CanUp:      current != "/",
		Revision:   nav.Revision(),
	}
	nav.mu.RUnlock()

	entries, err := m.fs.List(current, "/")
	if err != nil {
		return v, err
	}

	v.Items = make([]Item, 0, len(entries))
	for _, e := range entries {
		kind := "File"
		if e.IsDir() {
			kind = "Folder"
		}
		v.Items = append(v.Items, Item{
			Name:     e.Name,
			Path:     e.Path,
			Type:     e.Type,
			Kind:     kind,
			Text:     !e.IsDir() && vfs.IsText(e.Path),
			Size:     e.Size,
			Modified: e.ModifiedAt,
		})
	}
	if len(v.Items) == 0 {
		v.Empty = EmptyFolderText
	}
	return v, nil
}

func (m *Manager) get(windowID string) (*Navigator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	nav, ok := m.windows[windowID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWindowNotFound, windowID)
	}
	return nav, nil
}

func (m *Manager) updateGauge(count int) {
	if m.gauge != nil {
		m.gauge.SetWindowsActive(count)
	}
}

func mimeOf(content string) string {
	return mimetype.Detect([]byte(content)).String()
}
