package filesystem

import (
	"context"
	"strings"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// BasicOps handles basic file operations
type BasicOps struct {
	*FilesystemOps
}

// GetTools returns basic file operation tool definitions
func (b *BasicOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.read",
			Name:        "Read File",
			Description: "Read file contents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.write",
			Name:        "Write File",
			Description: "Write content to a file, creating parent directories",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "content", Type: "string", Description: "Content to write", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.append",
			Name:        "Append to File",
			Description: "Append content to the end of a file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "content", Type: "string", Description: "Content to append", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.create",
			Name:        "Create File",
			Description: "Create an empty file or refresh its timestamp",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.delete",
			Name:        "Delete",
			Description: "Delete a file or empty directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.exists",
			Name:        "Check Existence",
			Description: "Check if a file or directory exists",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File or directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.is_text",
			Name:        "Is Text File",
			Description: "Check whether a path has a plain text extension",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.read_lines",
			Name:        "Read Lines",
			Description: "Read file as array of lines",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.write_lines",
			Name:        "Write Lines",
			Description: "Write array of lines to file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "File path", Required: true},
				{Name: "lines", Type: "array", Description: "Lines to write", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Read reads file contents
func (b *BasicOps) Read(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := b.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	content, err := b.FS.ReadFile(path, "/")
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"path":    path,
		"content": content,
		"size":    len(content),
	})
}

// Write replaces file contents
func (b *BasicOps) Write(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := b.pathParam(params, "path")
	if !ok {
		return missing("path")
	}
	content, ok := params["content"].(string)
	if !ok {
		return missing("content")
	}

	written, err := b.FS.WriteFile(path, "/", content)
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"written": true,
		"path":    written,
		"size":    len(content),
	})
}

// Append appends content to a file, creating it when absent
func (b *BasicOps) Append(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := b.pathParam(params, "path")
	if !ok {
		return missing("path")
	}
	content, ok := params["content"].(string)
	if !ok {
		return missing("content")
	}

	existing := ""
	if b.FS.FileExists(path, "/") {
		existing, _ = b.FS.ReadFile(path, "/")
	}

	combined := existing + content
	if _, err := b.FS.WriteFile(path, "/", combined); err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"appended": true,
		"path":     path,
		"size":     len(combined),
	})
}

// Create touches a file
func (b *BasicOps) Create(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := b.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	created, err := b.FS.Touch(path, "/")
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"created": true, "path": created})
}

// Delete removes a file or an empty directory
func (b *BasicOps) Delete(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := b.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	if err := b.FS.Remove(path, "/"); err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"deleted": true, "path": path})
}

// Exists reports whether a node exists and what kind it is
func (b *BasicOps) Exists(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := b.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	entry, found := b.FS.Stat(path, "/")
	data := map[string]interface{}{
		"path":   path,
		"exists": found,
	}
	if found {
		data["type"] = entry.Type
	}
	return types.Success(data)
}

// IsText applies the plain text extension policy
func (b *BasicOps) IsText(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := b.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	return types.Success(map[string]interface{}{
		"path":      path,
		"is_text":   vfs.IsText(path),
		"extension": vfs.Ext(path),
	})
}

// ReadLines reads a file split on newlines
func (b *BasicOps) ReadLines(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := b.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	content, err := b.FS.ReadFile(path, "/")
	if err != nil {
		return types.Failure(err.Error())
	}

	lines := strings.Split(content, "\n")
	return types.Success(map[string]interface{}{
		"path":  path,
		"lines": lines,
		"count": len(lines),
	})
}

// WriteLines joins lines with newlines and writes them
func (b *BasicOps) WriteLines(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := b.pathParam(params, "path")
	if !ok {
		return missing("path")
	}
	raw, ok := params["lines"].([]interface{})
	if !ok {
		return missing("lines")
	}

	lines := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return types.Failure("lines must be strings")
		}
		lines = append(lines, s)
	}

	content := strings.Join(lines, "\n")
	if _, err := b.FS.WriteFile(path, "/", content); err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"written": true,
		"path":    path,
		"lines":   len(lines),
	})
}
