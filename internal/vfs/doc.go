// Package vfs provides the shared in-memory filesystem of the desktop.
//
// A single FileSystem instance is constructed (and seeded) once at startup and handed to
// every consumer: terminal sessions, the file browser, the text editor and the
// filesystem service. Nodes form a tree of Directory and File values rooted at an
// unnamed directory; a node's path is the segment sequence used to reach it.
//
// Path handling:
//   - Normalize/ToPath/Resolve: canonicalize raw paths against a working directory
//   - DisplayPath/ExpandHome: `~` rendering and expansion for the desktop user
//
// Mutations (MakeDir, Touch, WriteFile, Remove) publish an Event to every subscribed
// Observer after the change has been applied.
//
// Example Usage:
//
//	fs := vfs.New(vfs.DefaultSeed(), logger)
//	fs.Subscribe(func(ev vfs.Event) { log.Println(ev.Op, ev.Path) })
//	fs.WriteFile("notes.txt", "/home/ubuntu", "hello")
//	content, err := fs.ReadFile("notes.txt", "/home/ubuntu")
package vfs
