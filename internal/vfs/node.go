package vfs

import "time"

// NodeType discriminates the two node kinds in listings and stats.
type NodeType string

const (
	TypeDirectory NodeType = "directory"
	TypeFile      NodeType = "file"
)

// Node is either a *Directory or a *File. The interface is sealed; consumers switch on
// the concrete type and must handle both.
type Node interface {
	Name() string
	ModifiedAt() time.Time
	sealed()
}

// Directory holds named children. Child names are unique by construction of the map.
type Directory struct {
	name       string
	children   map[string]Node
	modifiedAt time.Time
}

// File holds opaque content.
type File struct {
	name       string
	content    string
	modifiedAt time.Time
}

func newDirectory(name string, now time.Time) *Directory {
	return &Directory{
		name:       name,
		children:   make(map[string]Node),
		modifiedAt: now,
	}
}

func newFile(name, content string, now time.Time) *File {
	return &File{
		name:       name,
		content:    content,
		modifiedAt: now,
	}
}

func (d *Directory) Name() string          { return d.name }
func (d *Directory) ModifiedAt() time.Time { return d.modifiedAt }
func (d *Directory) sealed()               {}

// Len returns the number of children.
func (d *Directory) Len() int { return len(d.children) }

func (f *File) Name() string          { return f.name }
func (f *File) ModifiedAt() time.Time { return f.modifiedAt }
func (f *File) sealed()               {}

// Content returns the file body.
func (f *File) Content() string { return f.content }

// Entry is the public description of a node returned by List, Stat and Walk.
type Entry struct {
	Name       string    `json:"name"`
	Type       NodeType  `json:"type"`
	Path       string    `json:"path"`
	ModifiedAt time.Time `json:"modified_at"`
	Size       int64     `json:"size"`
}

// IsDir reports whether the entry describes a directory.
func (e Entry) IsDir() bool { return e.Type == TypeDirectory }

func entryFor(node Node, path string) Entry {
	switch n := node.(type) {
	case *Directory:
		name := n.name
		if name == "" {
			name = "/"
		}
		return Entry{Name: name, Type: TypeDirectory, Path: path, ModifiedAt: n.modifiedAt}
	case *File:
		return Entry{Name: n.name, Type: TypeFile, Path: path, ModifiedAt: n.modifiedAt, Size: int64(len(n.content))}
	default:
		panic("vfs: unknown node type")
	}
}
