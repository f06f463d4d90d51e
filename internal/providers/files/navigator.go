package files

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// Labels shown by the browser.
const (
	RootLabel       = "Filesystem"
	EmptyFolderText = "This folder is empty."
	DefaultFolder   = "New Folder"
	DefaultFile     = "New Document.txt"
	PreviewLength   = 96
)

// Item is one card in the folder view.
type Item struct {
	Name     string       `json:"name"`
	Path     string       `json:"path"`
	Type     vfs.NodeType `json:"type"`
	Kind     string       `json:"kind"`
	Text     bool         `json:"text"`
	Size     int64        `json:"size"`
	Modified time.Time    `json:"modified"`
}

// View is the rendered state of a window.
type View struct {
	WindowID   string `json:"window_id"`
	Path       string `json:"path"`
	Label      string `json:"label"`
	Items      []Item `json:"items"`
	Empty      string `json:"empty,omitempty"`
	CanBack    bool   `json:"can_back"`
	CanForward bool   `json:"can_forward"`
	CanUp      bool   `json:"can_up"`
	Revision   uint64 `json:"revision"`
}

// Navigator is one file browser window.
type Navigator struct {
	ID       string
	OpenedAt time.Time

	mu       sync.RWMutex
	stack    []string
	index    int
	revision atomic.Uint64
	sub      vfs.SubscriptionID
}

func newNavigator(id, start string, now time.Time) *Navigator {
	return &Navigator{ID: id, OpenedAt: now, stack: []string{start}}
}

// Current returns the directory shown.
func (n *Navigator) Current() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.stack[n.index]
}

// Revision counts changes observed in the current directory.
func (n *Navigator) Revision() uint64 {
	return n.revision.Load()
}

// push drops any forward history and appends path.
func (n *Navigator) push(path string) {
	n.stack = append(n.stack[:n.index+1], path)
	n.index++
}

func (n *Navigator) back() bool {
	if n.index <= 0 {
		return false
	}
	n.index--
	return true
}

func (n *Navigator) forward() bool {
	if n.index >= len(n.stack)-1 {
		return false
	}
	n.index++
	return true
}

// observe bumps the revision when an event touches the current directory.
func (n *Navigator) observe(ev vfs.Event) {
	current := n.Current()
	if ev.Parent == current || ev.Path == current {
		n.revision.Add(1)
	}
}

// Label renders a path as the browser shows it: "Filesystem" at the root, else
// segments joined by " / " with "home" capitalized.
func Label(path string) string {
	segments := vfs.Normalize(path, "/")
	if len(segments) == 0 {
		return RootLabel
	}
	for i, s := range segments {
		if s == "home" {
			segments[i] = "Home"
		}
	}
	return strings.Join(segments, " / ")
}

// Preview builds the notice shown for a file that cannot be opened as text.
func Preview(path, content string) string {
	runes := []rune(content)
	body := content
	if len(runes) > PreviewLength {
		body = string(runes[:PreviewLength]) + "..."
	}
	return vfs.Base(path) + "\n\n" + body
}
