package filesystem

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/saintfish/chardet"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// MetadataOps handles file metadata
type MetadataOps struct {
	*FilesystemOps
}

// GetTools returns metadata tool definitions
func (m *MetadataOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.stat",
			Name:        "File Info",
			Description: "Get file or directory metadata",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "object",
		},
		{
			ID:          "filesystem.size_human",
			Name:        "Human Readable Size",
			Description: "Get file size formatted for display",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.total_size",
			Name:        "Total Size",
			Description: "Sum of file sizes beneath a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "number",
		},
		{
			ID:          "filesystem.mime_type",
			Name:        "Get MIME Type",
			Description: "Detect MIME type from file content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.detect_encoding",
			Name:        "Detect Encoding",
			Description: "Guess the character set of file content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "object",
		},
	}
}

// Stat returns metadata for one node
func (m *MetadataOps) Stat(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := m.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	entry, found := m.FS.Stat(path, "/")
	if !found {
		return types.Failure("Path not found.")
	}

	info := m.info(entry)
	return types.Success(map[string]interface{}{
		"name":      info.Name,
		"path":      info.Path,
		"display":   info.Display,
		"size":      info.Size,
		"is_dir":    info.IsDir,
		"modified":  info.Modified,
		"extension": info.Extension,
		"text":      info.Text,
	})
}

// SizeHuman formats a file size
func (m *MetadataOps) SizeHuman(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := m.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	entry, found := m.FS.Stat(path, "/")
	if !found {
		return types.Failure("Path not found.")
	}

	return types.Success(map[string]interface{}{
		"path":  path,
		"size":  entry.Size,
		"human": FormatBytes(entry.Size),
	})
}

// TotalSize sums file sizes beneath a directory
func (m *MetadataOps) TotalSize(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := m.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	var total int64
	var files int
	err := m.FS.Walk(path, "/", func(entry vfs.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !entry.IsDir() {
			total += entry.Size
			files++
		}
		return nil
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"path":  path,
		"total": total,
		"human": FormatBytes(total),
		"files": files,
	})
}

// MIMEType sniffs the content type of a file
func (m *MetadataOps) MIMEType(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := m.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	content, err := m.FS.ReadFile(path, "/")
	if err != nil {
		return types.Failure(err.Error())
	}

	mtype := DetectMIME(content)
	return types.Success(map[string]interface{}{
		"path":      path,
		"mime_type": mtype.String(),
		"extension": mtype.Extension(),
	})
}

// DetectEncoding guesses the character set of a file
func (m *MetadataOps) DetectEncoding(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := m.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	content, err := m.FS.ReadFile(path, "/")
	if err != nil {
		return types.Failure(err.Error())
	}

	charset, confidence := DetectCharset(content)
	return types.Success(map[string]interface{}{
		"path":       path,
		"charset":    charset,
		"confidence": confidence,
	})
}

// DetectMIME sniffs content held in the filesystem.
func DetectMIME(content string) *mimetype.MIME {
	return mimetype.Detect([]byte(content))
}

// DetectCharset returns the most likely charset and its confidence (0-100).
// Empty or undecidable content reports utf-8.
func DetectCharset(content string) (string, int) {
	if content == "" {
		return "utf-8", 100
	}
	result, err := chardet.NewTextDetector().DetectBest([]byte(content))
	if err != nil || result == nil {
		return "utf-8", 0
	}
	return strings.ToLower(result.Charset), result.Confidence
}

// FormatBytes formats bytes to human-readable size
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.2f %s", float64(bytes)/float64(div), units[exp])
}
