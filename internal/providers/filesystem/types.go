package filesystem

import (
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// FileInfo represents file metadata
type FileInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Display   string    `json:"display"`
	Size      int64     `json:"size"`
	IsDir     bool      `json:"is_dir"`
	Modified  time.Time `json:"modified"`
	Extension string    `json:"extension,omitempty"`
	Text      bool      `json:"text"`
}

// FilesystemOps carries what every operation module shares: the desktop
// filesystem and the home directory relative paths start from.
type FilesystemOps struct {
	FS   *vfs.FileSystem
	Home string
}

// NewFilesystemOps creates shared state for the operation modules.
func NewFilesystemOps(fs *vfs.FileSystem, home string) *FilesystemOps {
	if home == "" {
		home = "/"
	}
	return &FilesystemOps{FS: fs, Home: vfs.Resolve(home, "/")}
}

func (ops *FilesystemOps) info(entry vfs.Entry) FileInfo {
	fi := FileInfo{
		Name:     entry.Name,
		Path:     entry.Path,
		Display:  vfs.DisplayPath(entry.Path, ops.Home),
		Size:     entry.Size,
		IsDir:    entry.IsDir(),
		Modified: entry.ModifiedAt,
	}
	if !fi.IsDir {
		fi.Extension = vfs.Ext(entry.Path)
		fi.Text = vfs.IsText(entry.Path)
	}
	return fi
}
