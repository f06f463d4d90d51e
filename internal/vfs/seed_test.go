package vfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed(t *testing.T) {
	fs := New(DefaultSeed(), nil)

	for _, dir := range []string{"/home/ubuntu/Templates", "/usr/local/bin", "/var/log", "/home/ubuntu/Documents/Guides"} {
		assert.True(t, fs.DirectoryExists(dir, "/"), dir)
	}

	content, err := fs.ReadFile("/etc/lsb-release", "/")
	require.NoError(t, err)
	assert.Contains(t, content, "DISTRIB_CODENAME=jammy")

	content, err = fs.ReadFile("/home/ubuntu/Downloads/GettingStarted.zip", "/")
	require.NoError(t, err)
	assert.Equal(t, "[compressed archive placeholder]", content)

	entries, err := fs.List("/home/ubuntu/Desktop", "/")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Install Tips.txt", entries[0].Name)
	assert.Equal(t, "Welcome.md", entries[1].Name)
}

func TestSeedFailuresAreNotFatal(t *testing.T) {
	seed := &Seed{
		Directories: []string{"/etc/hosts", "/var"},
		Files: map[string]string{
			"/etc/hosts": "127.0.0.1 localhost",
			"/etc/motd":  "hi",
		},
	}

	fs := New(seed, nil)

	assert.True(t, fs.DirectoryExists("/etc/hosts", "/"))
	assert.True(t, fs.DirectoryExists("/var", "/"))
	assert.True(t, fs.FileExists("/etc/motd", "/"))
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		format string
		data   string
	}{
		{"yaml", "directories:\n  - /srv\nfiles:\n  /srv/readme.txt: hello\n"},
		{"toml", "directories = [\"/srv\"]\n[files]\n\"/srv/readme.txt\" = \"hello\"\n"},
		{"json", `{"directories":["/srv"],"files":{"/srv/readme.txt":"hello"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			seed, err := ParseSeed([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, []string{"/srv"}, seed.Directories)
			assert.Equal(t, "hello", seed.Files["/srv/readme.txt"])
		})
	}

	_, err := ParseSeed([]byte("x"), "ini")
	assert.Error(t, err)
}

func TestLoadSeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yml")
	require.NoError(t, os.WriteFile(path, []byte("directories: [/opt/tools]\n"), 0o644))

	seed, err := LoadSeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"/opt/tools"}, seed.Directories)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadSeedDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes", "daily"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes", "todo.md"), []byte("- ship"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.txt"), []byte("top"), 0o644))

	seed, err := LoadSeedDir(root, "/srv/import")
	require.NoError(t, err)

	assert.Equal(t, []string{"/srv/import/notes", "/srv/import/notes/daily"}, seed.Directories)
	assert.Equal(t, "- ship", seed.Files["/srv/import/notes/todo.md"])
	assert.Equal(t, "top", seed.Files["/srv/import/top.txt"])

	fs := New(DefaultSeed().Merge(seed), nil)
	assert.True(t, fs.DirectoryExists("/srv/import/notes/daily", "/"))
	assert.True(t, fs.FileExists("/home/ubuntu/Desktop/Welcome.md", "/"))
}
