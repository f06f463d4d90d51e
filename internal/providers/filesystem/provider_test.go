package filesystem

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

func newTestProvider(t *testing.T) (*Provider, *vfs.FileSystem) {
	t.Helper()
	fs := vfs.New(vfs.DefaultSeed(), nil)
	return NewProvider(fs, "/home/ubuntu"), fs
}

func run(t *testing.T, p *Provider, toolID string, params map[string]interface{}) *types.Result {
	t.Helper()
	result, err := p.Execute(context.Background(), toolID, params, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func failureMessage(t *testing.T, result *types.Result) string {
	t.Helper()
	require.False(t, result.Success)
	require.NotNil(t, result.Error)
	return *result.Error
}

func TestDefinitionTools(t *testing.T) {
	p, _ := newTestProvider(t)
	def := p.Definition()

	assert.Equal(t, "filesystem", def.ID)
	seen := map[string]bool{}
	for _, tool := range def.Tools {
		assert.True(t, strings.HasPrefix(tool.ID, "filesystem."), tool.ID)
		assert.False(t, seen[tool.ID], "duplicate tool %s", tool.ID)
		assert.NotEmpty(t, tool.Name)
		seen[tool.ID] = true

		// Every advertised tool must be routed.
		_, err := p.Execute(context.Background(), tool.ID, map[string]interface{}{}, nil)
		assert.NoError(t, err, tool.ID)
	}
	for _, id := range []string{
		"filesystem.list", "filesystem.stat", "filesystem.read", "filesystem.write",
		"filesystem.create", "filesystem.mkdir", "filesystem.delete", "filesystem.exists",
		"filesystem.resolve", "filesystem.is_text", "filesystem.glob", "filesystem.find_text",
		"filesystem.mime_type", "filesystem.detect_encoding", "filesystem.read_json",
		"filesystem.write_json", "filesystem.read_yaml", "filesystem.read_toml", "filesystem.export",
	} {
		assert.True(t, seen[id], "missing tool %s", id)
	}
}

func TestUnknownTool(t *testing.T) {
	p, _ := newTestProvider(t)
	_, err := p.Execute(context.Background(), "filesystem.chmod", nil, nil)
	assert.Error(t, err)
}

func TestReadWrite(t *testing.T) {
	p, fs := newTestProvider(t)

	result := run(t, p, "filesystem.write", map[string]interface{}{
		"path":    "~/notes/today.txt",
		"content": "hello",
	})
	require.True(t, result.Success)
	assert.Equal(t, "/home/ubuntu/notes/today.txt", result.Data["path"])

	content, err := fs.ReadFile("/home/ubuntu/notes/today.txt", "/")
	require.NoError(t, err)
	assert.Equal(t, "hello", content)

	result = run(t, p, "filesystem.read", map[string]interface{}{"path": "notes/today.txt"})
	require.True(t, result.Success)
	assert.Equal(t, "hello", result.Data["content"])

	result = run(t, p, "filesystem.append", map[string]interface{}{"path": "notes/today.txt", "content": " world"})
	require.True(t, result.Success)
	content, _ = fs.ReadFile("/home/ubuntu/notes/today.txt", "/")
	assert.Equal(t, "hello world", content)
}

func TestFailuresCarryFilesystemMessages(t *testing.T) {
	p, _ := newTestProvider(t)

	tests := []struct {
		name   string
		toolID string
		params map[string]interface{}
		want   string
	}{
		{"read missing", "filesystem.read", map[string]interface{}{"path": "/nope.txt"}, "File not found."},
		{"read directory", "filesystem.read", map[string]interface{}{"path": "/etc"}, "File not found."},
		{"list file", "filesystem.list", map[string]interface{}{"path": "/etc/lsb-release"}, "Not a directory."},
		{"list missing", "filesystem.list", map[string]interface{}{"path": "/missing"}, "Directory not found."},
		{"delete populated", "filesystem.delete", map[string]interface{}{"path": "~/Documents"}, "Directory not empty."},
		{"delete root", "filesystem.delete", map[string]interface{}{"path": "/"}, "Cannot remove root."},
		{"delete missing", "filesystem.delete", map[string]interface{}{"path": "/ghost"}, "Path not found."},
		{"mkdir through file", "filesystem.mkdir", map[string]interface{}{"path": "/etc/lsb-release/x"}, "Path conflicts with an existing file."},
		{"create root", "filesystem.create", map[string]interface{}{"path": "/"}, "Cannot touch root directory."},
		{"missing path", "filesystem.read", map[string]interface{}{}, "path parameter required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failureMessage(t, run(t, p, tt.toolID, tt.params)))
		})
	}
}

func TestListDefaultsToHome(t *testing.T) {
	p, _ := newTestProvider(t)

	result := run(t, p, "filesystem.list", map[string]interface{}{})
	require.True(t, result.Success)
	assert.Equal(t, "/home/ubuntu", result.Data["path"])
	assert.Equal(t, "~", result.Data["display"])

	entries := result.Data["entries"].([]FileInfo)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
		assert.True(t, e.IsDir)
	}
	assert.Equal(t, []string{"Desktop", "Documents", "Downloads", "Music", "Pictures", "Public", "Templates"}, names)
}

func TestExistsAndStat(t *testing.T) {
	p, _ := newTestProvider(t)

	result := run(t, p, "filesystem.exists", map[string]interface{}{"path": "/etc"})
	assert.Equal(t, true, result.Data["exists"])
	assert.Equal(t, vfs.TypeDirectory, result.Data["type"])

	result = run(t, p, "filesystem.exists", map[string]interface{}{"path": "/nope"})
	assert.Equal(t, false, result.Data["exists"])

	result = run(t, p, "filesystem.stat", map[string]interface{}{"path": "~/Desktop/Welcome.md"})
	require.True(t, result.Success)
	assert.Equal(t, "Welcome.md", result.Data["name"])
	assert.Equal(t, "~/Desktop/Welcome.md", result.Data["display"])
	assert.Equal(t, "md", result.Data["extension"])
	assert.Equal(t, true, result.Data["text"])

	assert.Equal(t, "Path not found.", failureMessage(t, run(t, p, "filesystem.stat", map[string]interface{}{"path": "/x"})))
}

func TestResolve(t *testing.T) {
	p, _ := newTestProvider(t)

	tests := []struct {
		path, cwd, want string
	}{
		{"Documents", "", "/home/ubuntu/Documents"},
		{"../..", "", "/"},
		{"~/Music", "/etc", "/home/ubuntu/Music"},
		{"log", "/var", "/var/log"},
		{`a\b`, "/", "/a/b"},
	}
	for _, tt := range tests {
		params := map[string]interface{}{"path": tt.path}
		if tt.cwd != "" {
			params["cwd"] = tt.cwd
		}
		result := run(t, p, "filesystem.resolve", params)
		assert.Equal(t, tt.want, result.Data["path"], "resolve(%q, %q)", tt.path, tt.cwd)
	}
}

func TestIsText(t *testing.T) {
	p, _ := newTestProvider(t)

	result := run(t, p, "filesystem.is_text", map[string]interface{}{"path": "README.MD"})
	assert.Equal(t, true, result.Data["is_text"])
	assert.Equal(t, "md", result.Data["extension"])

	result = run(t, p, "filesystem.is_text", map[string]interface{}{"path": "~/Downloads/GettingStarted.zip"})
	assert.Equal(t, false, result.Data["is_text"])
}

func TestWalkDepth(t *testing.T) {
	p, _ := newTestProvider(t)

	result := run(t, p, "filesystem.walk", map[string]interface{}{"path": "~/Documents", "max_depth": float64(1)})
	require.True(t, result.Success)

	entries := result.Data["entries"].([]FileInfo)
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"/home/ubuntu/Documents/Guides", "/home/ubuntu/Documents/Project.md"}, paths)

	result = run(t, p, "filesystem.walk", map[string]interface{}{"path": "~/Documents"})
	assert.Equal(t, 3, result.Data["count"])
}

func TestTree(t *testing.T) {
	p, _ := newTestProvider(t)

	result := run(t, p, "filesystem.tree", map[string]interface{}{"path": "~/Documents"})
	require.True(t, result.Success)

	tree := result.Data["tree"].(*treeNode)
	assert.Equal(t, "Documents", tree.Name)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "Guides", tree.Children[0].Name)
	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, "Terminal Cheatsheet.txt", tree.Children[0].Children[0].Name)
}

func TestCopyMoveRename(t *testing.T) {
	p, fs := newTestProvider(t)

	result := run(t, p, "filesystem.copy", map[string]interface{}{"source": "~/Documents", "destination": "~/Backup"})
	require.True(t, result.Success)
	assert.Equal(t, 4, result.Data["nodes"])
	assert.True(t, fs.FileExists("/home/ubuntu/Backup/Guides/Terminal Cheatsheet.txt", "/"))
	assert.True(t, fs.FileExists("/home/ubuntu/Documents/Project.md", "/"))

	msg := failureMessage(t, run(t, p, "filesystem.copy", map[string]interface{}{"source": "~/Documents", "destination": "~/Documents/inner"}))
	assert.Contains(t, msg, "into itself")

	msg = failureMessage(t, run(t, p, "filesystem.copy", map[string]interface{}{"source": "~/Music", "destination": "~/Backup"}))
	assert.Contains(t, msg, "already exists")

	result = run(t, p, "filesystem.move", map[string]interface{}{"source": "~/Backup", "destination": "/tmp/backup"})
	require.True(t, result.Success)
	assert.False(t, fs.DirectoryExists("/home/ubuntu/Backup", "/"))
	assert.True(t, fs.FileExists("/tmp/backup/Project.md", "/"))

	result = run(t, p, "filesystem.rename", map[string]interface{}{"path": "/tmp/backup/Project.md", "new_name": "Plan.md"})
	require.True(t, result.Success)
	assert.Equal(t, "/tmp/backup/Plan.md", result.Data["new_path"])
	assert.False(t, fs.FileExists("/tmp/backup/Project.md", "/"))

	msg = failureMessage(t, run(t, p, "filesystem.rename", map[string]interface{}{"path": "/tmp/backup/Plan.md", "new_name": "a/b"}))
	assert.Equal(t, "new_name must be a single path segment", msg)
}

func TestSizes(t *testing.T) {
	p, _ := newTestProvider(t)

	run(t, p, "filesystem.write", map[string]interface{}{"path": "/data/big.txt", "content": strings.Repeat("x", 2048)})

	result := run(t, p, "filesystem.size_human", map[string]interface{}{"path": "/data/big.txt"})
	assert.Equal(t, "2.00 KB", result.Data["human"])

	result = run(t, p, "filesystem.total_size", map[string]interface{}{"path": "/data"})
	assert.Equal(t, int64(2048), result.Data["total"])
	assert.Equal(t, 1, result.Data["files"])
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", FormatBytes(0))
	assert.Equal(t, "1023 B", FormatBytes(1023))
	assert.Equal(t, "1.50 KB", FormatBytes(1536))
	assert.Equal(t, "1.00 MB", FormatBytes(1<<20))
}
