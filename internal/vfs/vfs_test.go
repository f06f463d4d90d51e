package vfs

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestFS(t *testing.T) (*FileSystem, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)}
	fs := New(nil, nil).WithClock(clock.Now)
	return fs, clock
}

func TestWriteReadRoundTrip(t *testing.T) {
	fs, _ := newTestFS(t)

	resolved, err := fs.WriteFile("notes/today.txt", "/home", "hello")
	require.NoError(t, err)
	assert.Equal(t, "/home/notes/today.txt", resolved)

	content, err := fs.ReadFile("notes/today.txt", "/home")
	require.NoError(t, err)
	assert.Equal(t, "hello", content)
	assert.True(t, fs.DirectoryExists("/home/notes", "/"))
}

func TestReadFileHomeRelative(t *testing.T) {
	fs, _ := newTestFS(t)
	const home = "/home/ubuntu"

	_, err := fs.WriteFile("notes.txt", home, "hello")
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		err  error
	}{
		{"relative to cwd", "notes.txt", nil},
		{"expanded home", ExpandHome("~/notes.txt", home), nil},
		{"tilde is a plain segment", "~/notes.txt", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, err := fs.ReadFile(tt.path, home)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "hello", content)
		})
	}
}

func TestWriteFileReplacesContent(t *testing.T) {
	fs, _ := newTestFS(t)

	_, err := fs.WriteFile("/a.txt", "/", "one")
	require.NoError(t, err)
	_, err = fs.WriteFile("/a.txt", "/", "two")
	require.NoError(t, err)

	content, err := fs.ReadFile("/a.txt", "/")
	require.NoError(t, err)
	assert.Equal(t, "two", content)
}

func TestWriteFileErrors(t *testing.T) {
	fs, _ := newTestFS(t)
	_, err := fs.MakeDir("/docs", "/")
	require.NoError(t, err)

	_, err = fs.WriteFile("/", "/", "x")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Equal(t, "Invalid file path.", err.Error())

	_, err = fs.WriteFile("/docs", "/", "x")
	assert.ErrorIs(t, err, ErrConflict)
	assert.True(t, fs.DirectoryExists("/docs", "/"))
}

func TestMakeDir(t *testing.T) {
	fs, _ := newTestFS(t)

	resolved, err := fs.MakeDir("a/b/c", "/x")
	require.NoError(t, err)
	assert.Equal(t, "/x/a/b/c", resolved)
	assert.True(t, fs.DirectoryExists("/x/a", "/"))

	_, err = fs.MakeDir("/x/a/b/c", "/")
	assert.NoError(t, err, "makeDir must be idempotent")

	_, err = fs.WriteFile("/file.txt", "/", "data")
	require.NoError(t, err)
	_, err = fs.MakeDir("/file.txt/sub", "/")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "Path conflicts with an existing file.", err.Error())
}

func TestTouch(t *testing.T) {
	fs, clock := newTestFS(t)

	_, err := fs.Touch("/", "/")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Equal(t, "Cannot touch root directory.", err.Error())

	_, err = fs.Touch("deep/new.txt", "/tmp")
	require.NoError(t, err)
	content, err := fs.ReadFile("/tmp/deep/new.txt", "/")
	require.NoError(t, err)
	assert.Empty(t, content)

	_, err = fs.WriteFile("/tmp/deep/new.txt", "/", "keep")
	require.NoError(t, err)
	before, _ := fs.Stat("/tmp/deep/new.txt", "/")

	clock.now = clock.now.Add(time.Hour)
	_, err = fs.Touch("/tmp/deep/new.txt", "/")
	require.NoError(t, err)

	after, _ := fs.Stat("/tmp/deep/new.txt", "/")
	assert.True(t, after.ModifiedAt.After(before.ModifiedAt))
	content, _ = fs.ReadFile("/tmp/deep/new.txt", "/")
	assert.Equal(t, "keep", content, "touch must not clear content")
}

func TestReadFileErrors(t *testing.T) {
	fs, _ := newTestFS(t)
	_, err := fs.MakeDir("/etc", "/")
	require.NoError(t, err)

	_, err = fs.ReadFile("/missing", "/")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "File not found.", err.Error())

	_, err = fs.ReadFile("/etc", "/")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdering(t *testing.T) {
	fs, _ := newTestFS(t)
	for _, f := range []string{"zeta.txt", "Alpha.md", "beta.txt"} {
		_, err := fs.WriteFile(f, "/box", "")
		require.NoError(t, err)
	}
	for _, d := range []string{"music", "Documents", "apps"} {
		_, err := fs.MakeDir(d, "/box")
		require.NoError(t, err)
	}

	entries, err := fs.List("/box", "/")
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"apps", "Documents", "music", "Alpha.md", "beta.txt", "zeta.txt"}, names)
	assert.Equal(t, TypeDirectory, entries[0].Type)
	assert.Equal(t, "/box/apps", entries[0].Path)
	assert.Equal(t, TypeFile, entries[5].Type)
}

func TestListErrors(t *testing.T) {
	fs, _ := newTestFS(t)
	_, err := fs.WriteFile("/a.txt", "/", "x")
	require.NoError(t, err)

	_, err = fs.List("/nope", "/")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Directory not found.", err.Error())

	_, err = fs.List("/a.txt", "/")
	assert.ErrorIs(t, err, ErrNotADirectory)
	assert.Equal(t, "Not a directory.", err.Error())
}

func TestRemove(t *testing.T) {
	fs, _ := newTestFS(t)
	_, err := fs.WriteFile("/full/child.txt", "/", "x")
	require.NoError(t, err)
	_, err = fs.MakeDir("/empty", "/")
	require.NoError(t, err)

	err = fs.Remove("/full", "/")
	assert.ErrorIs(t, err, ErrDirectoryNotEmpty)
	assert.True(t, fs.FileExists("/full/child.txt", "/"))

	require.NoError(t, fs.Remove("/empty", "/"))
	assert.False(t, fs.DirectoryExists("/empty", "/"))

	err = fs.Remove("/", "/")
	assert.ErrorIs(t, err, ErrInvalidPath)
	assert.Equal(t, "Cannot remove root.", err.Error())

	err = fs.Remove("/ghost", "/")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Path not found.", err.Error())

	err = fs.Remove("/full/child.txt/x", "/")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScenarioDesktopFileLifecycle(t *testing.T) {
	fs, _ := newTestFS(t)
	const file = "/home/ubuntu/Desktop/a.txt"

	_, err := fs.MakeDir("/home/ubuntu/Desktop", "/")
	require.NoError(t, err)
	_, err = fs.Touch(file, "/")
	require.NoError(t, err)
	_, err = fs.WriteFile(file, "/", "hi")
	require.NoError(t, err)

	content, err := fs.ReadFile(file, "/")
	require.NoError(t, err)
	assert.Equal(t, "hi", content)

	require.NoError(t, fs.Remove(file, "/"))

	entries, err := fs.List("/home/ubuntu/Desktop", "/")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStat(t *testing.T) {
	fs, _ := newTestFS(t)
	_, err := fs.WriteFile("/etc/hostname", "/", "ubuntu-web")
	require.NoError(t, err)

	root, ok := fs.Stat("/", "/")
	require.True(t, ok)
	assert.Equal(t, "/", root.Name)
	assert.True(t, root.IsDir())

	entry, ok := fs.Stat("hostname", "/etc")
	require.True(t, ok)
	assert.Equal(t, "hostname", entry.Name)
	assert.Equal(t, "/etc/hostname", entry.Path)
	assert.Equal(t, int64(len("ubuntu-web")), entry.Size)

	_, ok = fs.Stat("/etc/hostname/x", "/")
	assert.False(t, ok)
	assert.True(t, fs.FileExists("/etc/hostname", "/"))
	assert.False(t, fs.DirectoryExists("/etc/hostname", "/"))
}

func TestMutationUpdatesParentTimestamp(t *testing.T) {
	fs, clock := newTestFS(t)
	_, err := fs.MakeDir("/docs", "/")
	require.NoError(t, err)
	before, _ := fs.Stat("/docs", "/")

	clock.now = clock.now.Add(time.Minute)
	_, err = fs.WriteFile("/docs/a.txt", "/", "x")
	require.NoError(t, err)

	after, _ := fs.Stat("/docs", "/")
	assert.True(t, after.ModifiedAt.After(before.ModifiedAt))
}

func TestWalk(t *testing.T) {
	fs := New(DefaultSeed(), nil)

	var paths []string
	err := fs.Walk("/home/ubuntu/Documents", "/", func(e Entry) error {
		paths = append(paths, e.Path)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/home/ubuntu/Documents",
		"/home/ubuntu/Documents/Guides",
		"/home/ubuntu/Documents/Guides/Terminal Cheatsheet.txt",
		"/home/ubuntu/Documents/Project.md",
	}, paths)
}

func TestWalkSkipDirAndStop(t *testing.T) {
	fs := New(DefaultSeed(), nil)

	var paths []string
	err := fs.Walk("/home/ubuntu", "/", func(e Entry) error {
		if e.IsDir() && e.Name == "Documents" {
			return SkipDir
		}
		paths = append(paths, e.Path)
		return nil
	})
	require.NoError(t, err)
	assert.NotContains(t, paths, "/home/ubuntu/Documents/Project.md")
	assert.Contains(t, paths, "/home/ubuntu/Desktop/Welcome.md")

	stop := errors.New("stop")
	err = fs.Walk("/", "/", func(Entry) error { return stop })
	assert.ErrorIs(t, err, stop)

	err = fs.Walk("/nowhere", "/", func(Entry) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

type countingRecorder struct {
	calls map[string]int
}

func (r *countingRecorder) RecordVFSMutation(op, status string) {
	r.calls[op+":"+status]++
}

func TestRecorder(t *testing.T) {
	rec := &countingRecorder{calls: map[string]int{}}
	fs := New(nil, nil).WithRecorder(rec)

	_, _ = fs.MakeDir("/a", "/")
	_ = fs.Remove("/", "/")

	assert.Equal(t, 1, rec.calls["mkdir:success"])
	assert.Equal(t, 1, rec.calls["remove:error"])
}

func TestCounts(t *testing.T) {
	fs, _ := newTestFS(t)

	files, dirs := fs.Counts()
	assert.Equal(t, 0, files)
	assert.Equal(t, 1, dirs)

	_, err := fs.WriteFile("/a/b/c.txt", "/", "x")
	require.NoError(t, err)
	files, dirs = fs.Counts()
	assert.Equal(t, 1, files)
	assert.Equal(t, 3, dirs)
}

func TestWalkNamesWithEdgeWhitespace(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fs *FileSystem) error
		files int
		dirs  int
		paths []string
	}{
		{
			name: "trailing space in directory",
			setup: func(fs *FileSystem) error {
				_, err := fs.MakeDir("/a /b", "/")
				return err
			},
			files: 0,
			dirs:  3,
			paths: []string{"/", "/a ", "/a /b"},
		},
		{
			name: "leading space in file",
			setup: func(fs *FileSystem) error {
				_, err := fs.WriteFile("/notes/ old.txt", "/", "x")
				return err
			},
			files: 1,
			dirs:  2,
			paths: []string{"/", "/notes", "/notes/ old.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, _ := newTestFS(t)
			require.NoError(t, tt.setup(fs))

			var paths []string
			require.NotPanics(t, func() {
				err := fs.Walk("/", "/", func(e Entry) error {
					paths = append(paths, e.Path)
					return nil
				})
				require.NoError(t, err)
			})
			assert.Equal(t, tt.paths, paths)

			files, dirs := fs.Counts()
			assert.Equal(t, tt.files, files)
			assert.Equal(t, tt.dirs, dirs)

			// The lock is released and later operations proceed.
			_, ok := fs.Stat(tt.paths[len(tt.paths)-1], "/")
			assert.True(t, ok)
			_, err := fs.Touch("/after.txt", "/")
			require.NoError(t, err)
		})
	}
}

func TestParentConflictReportsOperation(t *testing.T) {
	tests := []struct {
		name string
		op   func(fs *FileSystem) error
		want string
	}{
		{
			name: "mkdir",
			op: func(fs *FileSystem) error {
				_, err := fs.MakeDir("/plain.txt/sub", "/")
				return err
			},
			want: "mkdir",
		},
		{
			name: "touch",
			op: func(fs *FileSystem) error {
				_, err := fs.Touch("/plain.txt/child.txt", "/")
				return err
			},
			want: "touch",
		},
		{
			name: "write",
			op: func(fs *FileSystem) error {
				_, err := fs.WriteFile("/plain.txt/child.txt", "/", "x")
				return err
			},
			want: "write",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, _ := newTestFS(t)
			_, err := fs.WriteFile("/plain.txt", "/", "x")
			require.NoError(t, err)

			err = tt.op(fs)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrConflict)

			var pathErr *PathError
			require.True(t, errors.As(err, &pathErr))
			assert.Equal(t, tt.want, pathErr.Op)
			assert.Equal(t, "/plain.txt", pathErr.Path)
		})
	}
}
