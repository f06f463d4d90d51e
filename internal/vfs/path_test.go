package vfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		cwd  string
		want []string
	}{
		{"parent in middle", "/a/b/../c", "/", []string{"a", "c"}},
		{"relative with dot", "a/./b", "/x", []string{"x", "a", "b"}},
		{"blank is cwd", "   ", "/home/ubuntu", []string{"home", "ubuntu"}},
		{"backslashes", `docs\notes.txt`, "/home", []string{"home", "docs", "notes.txt"}},
		{"parent above root discarded", "../../..", "/a", []string{}},
		{"empty cwd is root", "etc", "", []string{"etc"}},
		{"duplicate separators", "//var///log/", "/", []string{"var", "log"}},
		{"absolute ignores cwd", "/etc", "/home/ubuntu", []string{"etc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw, tt.cwd))
		})
	}
}

func TestToPath(t *testing.T) {
	assert.Equal(t, "/", ToPath(nil))
	assert.Equal(t, "/home/ubuntu", ToPath([]string{"home", "ubuntu"}))
}

func TestResolveIdempotent(t *testing.T) {
	inputs := []string{"", ".", "..", "a/b/../c", "/x/./y/", `..\..\z`, "~/notes", "a b/c d"}
	cwds := []string{"/", "", "/home/ubuntu", "/a/b/c"}

	for _, p := range inputs {
		for _, cwd := range cwds {
			once := Resolve(p, cwd)
			assert.Equal(t, once, Resolve(once, "/"), "path %q cwd %q", p, cwd)
		}
	}
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "/", Base("/"))
	assert.Equal(t, "Welcome.md", Base("/home/ubuntu/Desktop/Welcome.md"))
	assert.Equal(t, "/home/ubuntu/Desktop", Dir("/home/ubuntu/Desktop/Welcome.md"))
	assert.Equal(t, "/", Dir("/etc"))
	assert.Equal(t, "md", Ext("/a/README.MD"))
	assert.Equal(t, "", Ext("/etc/lsb-release"))
	assert.Equal(t, "gz", Ext("archive.tar.gz"))
}

func TestDisplayPath(t *testing.T) {
	home := "/home/ubuntu"
	assert.Equal(t, "~", DisplayPath(home, home))
	assert.Equal(t, "~/Documents", DisplayPath("/home/ubuntu/Documents", home))
	assert.Equal(t, "/home/ubuntuX", DisplayPath("/home/ubuntuX", home))
	assert.Equal(t, "/etc", DisplayPath("/etc", home))
}

func TestExpandHome(t *testing.T) {
	home := "/home/ubuntu"
	assert.Equal(t, "", ExpandHome("  ", home))
	assert.Equal(t, home, ExpandHome("~", home))
	assert.Equal(t, "/home/ubuntu/Documents/notes.txt", ExpandHome("~/Documents/notes.txt", home))
	assert.Equal(t, "/home/ubuntu/x", ExpandHome("~//x", home))
	assert.Equal(t, "notes.txt", ExpandHome(" notes.txt ", home))
}

func TestIsText(t *testing.T) {
	assert.True(t, IsText("/home/ubuntu/Desktop/Welcome.md"))
	assert.True(t, IsText("CONFIG.YML"))
	assert.False(t, IsText("/home/ubuntu/Downloads/GettingStarted.zip"))
	assert.False(t, IsText("/etc/lsb-release"))
}
