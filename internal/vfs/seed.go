package vfs

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/charlievieth/fastwalk"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
)

// MaxSeedFileSize caps files imported from a host directory.
const MaxSeedFileSize = 1 << 20

// Seed is the initial tree applied once at construction. Directories are created in
// order before any file is written.
type Seed struct {
	Directories []string          `json:"directories" yaml:"directories" toml:"directories"`
	Files       map[string]string `json:"files" yaml:"files" toml:"files"`
}

func (s *Seed) sortedFiles() []string {
	paths := make([]string, 0, len(s.Files))
	for p := range s.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Merge appends other's directories and overlays its files.
func (s *Seed) Merge(other *Seed) *Seed {
	if other == nil {
		return s
	}
	s.Directories = append(s.Directories, other.Directories...)
	if s.Files == nil {
		s.Files = make(map[string]string, len(other.Files))
	}
	for p, content := range other.Files {
		s.Files[p] = content
	}
	return s
}

// DefaultSeed returns the stock desktop tree.
func DefaultSeed() *Seed {
	return &Seed{
		Directories: []string{
			"/home",
			"/home/ubuntu",
			"/home/ubuntu/Desktop",
			"/home/ubuntu/Documents",
			"/home/ubuntu/Documents/Guides",
			"/home/ubuntu/Downloads",
			"/home/ubuntu/Music",
			"/home/ubuntu/Pictures",
			"/home/ubuntu/Public",
			"/home/ubuntu/Templates",
			"/etc",
			"/usr/local/bin",
			"/var/log",
		},
		Files: map[string]string{
			"/home/ubuntu/Desktop/Install Tips.txt": "Welcome to the Ubuntu Web Desktop.\n\n" +
				"- Launch apps from Activities or the dock.\n" +
				"- Files and Terminal share this virtual filesystem.\n" +
				"- Use Settings to change wallpaper and accent colours.",
			"/home/ubuntu/Desktop/Welcome.md": "# Ubuntu Web Desktop\n" +
				"A lightweight simulation of the Ubuntu desktop running entirely in your browser.",
			"/home/ubuntu/Documents/Project.md": "# Project Notes\n" +
				"- This filesystem is stored in memory.\n" +
				"- Changes persist for the session.\n" +
				"- Export important text before closing the tab.",
			"/home/ubuntu/Documents/Guides/Terminal Cheatsheet.txt": "Useful commands:\n" +
				"  ls, cd, pwd, mkdir, touch, cat, rm\n" +
				"  apt update, apt install <pkg>\n" +
				"  open <file> (opens in text editor)\n" +
				"  history",
			"/home/ubuntu/Downloads/GettingStarted.zip": "[compressed archive placeholder]",
			"/home/ubuntu/Music/Playlist.txt":           "1. Ambient Waves\n2. Cosmic Drift\n3. Terminal Velocity",
			"/home/ubuntu/Pictures/Wallpaper Ideas.txt": "Try the Settings app to change wallpapers.",
			"/etc/lsb-release": "DISTRIB_ID=Ubuntu\nDISTRIB_RELEASE=22.04\n" +
				"DISTRIB_CODENAME=jammy\nDISTRIB_DESCRIPTION=\"Ubuntu Web Desktop\"",
			"/var/log/syslog": "System boot completed successfully.",
		},
	}
}

// LoadSeedFile reads a seed manifest. The format follows the extension: .yaml/.yml,
// .toml or .json.
func LoadSeedFile(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// ParseSeed decodes a manifest in the given format.
func ParseSeed(data []byte, format string) (*Seed, error) {
	var seed Seed
	var err error
	switch format {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &seed)
	case "toml":
		err = toml.Unmarshal(data, &seed)
	case "json":
		err = sonic.Unmarshal(data, &seed)
	default:
		return nil, fmt.Errorf("unsupported seed format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s seed: %w", format, err)
	}
	return &seed, nil
}

// LoadSeedDir imports a host directory as seed data mounted under prefix. Files larger
// than MaxSeedFileSize are skipped. Symlinks are not followed.
func LoadSeedDir(root, prefix string) (*Seed, error) {
	root = filepath.Clean(root)
	if prefix == "" {
		prefix = "/"
	}

	var mu sync.Mutex
	seed := &Seed{Files: make(map[string]string)}

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil || rel == "." {
			return nil
		}
		target := Resolve(filepath.ToSlash(rel), prefix)

		if d.IsDir() {
			mu.Lock()
			seed.Directories = append(seed.Directories, target)
			mu.Unlock()
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil || info.Size() > MaxSeedFileSize {
			return nil
		}
		data, readErr := os.ReadFile(p)
		if readErr != nil {
			return nil
		}

		mu.Lock()
		seed.Files[target] = string(data)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk seed dir: %w", err)
	}

	// fastwalk visits concurrently; parents must come first.
	sort.Strings(seed.Directories)
	return seed, nil
}
