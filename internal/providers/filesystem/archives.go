package filesystem

import (
	"archive/tar"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// Compression formats accepted by export and import.
const (
	CompressionNone = "none"
	CompressionGzip = "gzip"
	CompressionZstd = "zstd"
)

// MaxArchiveSize bounds decoded archive payloads accepted by import.
const MaxArchiveSize = 32 << 20

// ArchiveStats summarizes an export or import.
type ArchiveStats struct {
	Files       int   `json:"files"`
	Directories int   `json:"directories"`
	TotalSize   int64 `json:"total_size"`
}

// ArchivesOps handles tar archives of filesystem subtrees
type ArchivesOps struct {
	*FilesystemOps
}

// GetTools returns archive tool definitions
func (a *ArchivesOps) GetTools() []types.Tool {
	compression := types.Parameter{
		Name: "compression", Type: "string", Description: "Compression (none/gzip/zstd, default gzip)", Required: false,
	}
	return []types.Tool{
		{
			ID:          "filesystem.export",
			Name:        "Export Archive",
			Description: "Pack a directory into a base64 tar archive",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory to export (defaults to home)", Required: false},
				compression,
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.import",
			Name:        "Import Archive",
			Description: "Unpack a base64 tar archive into a directory",
			Parameters: []types.Parameter{
				{Name: "data", Type: "string", Description: "Base64 archive", Required: true},
				{Name: "destination", Type: "string", Description: "Target directory", Required: true},
				compression,
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.archive_list",
			Name:        "List Archive",
			Description: "List entries of a base64 tar archive",
			Parameters: []types.Parameter{
				{Name: "data", Type: "string", Description: "Base64 archive", Required: true},
				compression,
			},
			Returns: "array",
		},
	}
}

func compressionParam(params map[string]interface{}) string {
	if c, ok := params["compression"].(string); ok && c != "" {
		return strings.ToLower(c)
	}
	return CompressionGzip
}

// Export packs a subtree
func (a *ArchivesOps) Export(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	root, ok := a.pathParam(params, "path")
	if !ok {
		root = a.Home
	}
	compression := compressionParam(params)

	data, stats, err := Export(ctx, a.FS, root, compression)
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"path":        root,
		"compression": compression,
		"data":        base64.StdEncoding.EncodeToString(data),
		"size":        len(data),
		"files":       stats.Files,
		"directories": stats.Directories,
		"total_size":  stats.TotalSize,
	})
}

// Import unpacks an archive into the filesystem
func (a *ArchivesOps) Import(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	data, err := archiveParam(params)
	if err != nil {
		return types.Failure(err.Error())
	}
	destination, ok := a.pathParam(params, "destination")
	if !ok {
		return missing("destination")
	}

	stats, err := Import(ctx, a.FS, data, compressionParam(params), destination)
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"destination": destination,
		"files":       stats.Files,
		"directories": stats.Directories,
		"total_size":  stats.TotalSize,
	})
}

// List reads archive headers without touching the filesystem
func (a *ArchivesOps) List(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	data, err := archiveParam(params)
	if err != nil {
		return types.Failure(err.Error())
	}

	entries := []map[string]interface{}{}
	err = readArchive(data, compressionParam(params), func(header *tar.Header, _ io.Reader) error {
		entries = append(entries, map[string]interface{}{
			"name":     header.Name,
			"size":     header.Size,
			"is_dir":   header.Typeflag == tar.TypeDir,
			"modified": header.ModTime,
		})
		return nil
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"entries": entries, "count": len(entries)})
}

func archiveParam(params map[string]interface{}) ([]byte, error) {
	encoded, ok := params["data"].(string)
	if !ok || encoded == "" {
		return nil, errors.New("data parameter required")
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 archive: %v", err)
	}
	if len(data) > MaxArchiveSize {
		return nil, fmt.Errorf("archive exceeds maximum size of %d bytes", MaxArchiveSize)
	}
	return data, nil
}

// Export writes the subtree at root as a tar stream. Entry names are relative to root;
// directories end in "/".
func Export(ctx context.Context, fs *vfs.FileSystem, root, compression string) ([]byte, ArchiveStats, error) {
	var (
		buf   bytes.Buffer
		stats ArchiveStats
		sink  io.WriteCloser
	)

	switch compression {
	case CompressionGzip:
		sink = gzip.NewWriter(&buf)
	case CompressionZstd:
		zw, err := zstd.NewWriter(&buf)
		if err != nil {
			return nil, stats, fmt.Errorf("zstd: %v", err)
		}
		sink = zw
	case CompressionNone:
		sink = nopCloser{&buf}
	default:
		return nil, stats, fmt.Errorf("unsupported compression: %s", compression)
	}

	tw := tar.NewWriter(sink)
	err := fs.Walk(root, "/", func(entry vfs.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.Path == root {
			return nil
		}

		name := relative(root, entry.Path)
		header := &tar.Header{Name: name, ModTime: entry.ModifiedAt, Mode: 0o644}
		var content string
		if entry.IsDir() {
			header.Name += "/"
			header.Typeflag = tar.TypeDir
			header.Mode = 0o755
			stats.Directories++
		} else {
			var err error
			if content, err = fs.ReadFile(entry.Path, "/"); err != nil {
				return err
			}
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(content))
			stats.Files++
			stats.TotalSize += header.Size
		}

		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		_, err := io.WriteString(tw, content)
		return err
	})
	if err != nil {
		return nil, stats, err
	}

	if err := tw.Close(); err != nil {
		return nil, stats, err
	}
	if err := sink.Close(); err != nil {
		return nil, stats, err
	}
	return buf.Bytes(), stats, nil
}

// Import recreates archive entries beneath destination. Entry names cannot escape it.
func Import(ctx context.Context, fs *vfs.FileSystem, data []byte, compression, destination string) (ArchiveStats, error) {
	var stats ArchiveStats
	if _, err := fs.MakeDir(destination, "/"); err != nil {
		return stats, err
	}

	err := readArchive(data, compression, func(header *tar.Header, body io.Reader) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Resolving against "/" first drops any leading ".." before re-rooting.
		target := vfs.Resolve(strings.TrimPrefix(vfs.Resolve(header.Name, "/"), "/"), destination)

		switch header.Typeflag {
		case tar.TypeDir:
			if _, err := fs.MakeDir(target, "/"); err != nil {
				return err
			}
			stats.Directories++
		case tar.TypeReg:
			content, err := io.ReadAll(io.LimitReader(body, MaxArchiveSize))
			if err != nil {
				return err
			}
			if _, err := fs.WriteFile(target, "/", string(content)); err != nil {
				return err
			}
			stats.Files++
			stats.TotalSize += int64(len(content))
		}
		return nil
	})
	return stats, err
}

func readArchive(data []byte, compression string, fn func(*tar.Header, io.Reader) error) error {
	var source io.Reader = bytes.NewReader(data)

	switch compression {
	case CompressionGzip:
		gr, err := gzip.NewReader(source)
		if err != nil {
			return fmt.Errorf("gzip failed: %v", err)
		}
		defer gr.Close()
		source = gr
	case CompressionZstd:
		zr, err := zstd.NewReader(source)
		if err != nil {
			return fmt.Errorf("zstd failed: %v", err)
		}
		defer zr.Close()
		source = zr
	case CompressionNone:
	default:
		return fmt.Errorf("unsupported compression: %s", compression)
	}

	tr := tar.NewReader(source)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("tar read failed: %v", err)
		}
		if err := fn(header, tr); err != nil {
			return err
		}
	}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
