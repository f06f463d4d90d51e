package filesystem

import (
	"context"
	"fmt"
	"strings"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// OperationsOps handles copy, move and rename. The filesystem itself only knows
// create, write and remove, so these are composed from those primitives.
type OperationsOps struct {
	*FilesystemOps
}

// GetTools returns file operation tool definitions
func (o *OperationsOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.copy",
			Name:        "Copy",
			Description: "Copy a file or directory tree",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.move",
			Name:        "Move",
			Description: "Move a file or directory tree",
			Parameters: []types.Parameter{
				{Name: "source", Type: "string", Description: "Source path", Required: true},
				{Name: "destination", Type: "string", Description: "Destination path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.rename",
			Name:        "Rename",
			Description: "Rename a file or directory in place",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Current path", Required: true},
				{Name: "new_name", Type: "string", Description: "New name", Required: true},
			},
			Returns: "boolean",
		},
	}
}

// Copy duplicates a node
func (o *OperationsOps) Copy(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, ok := o.pathParam(params, "source")
	if !ok {
		return missing("source")
	}
	destination, ok := o.pathParam(params, "destination")
	if !ok {
		return missing("destination")
	}

	copied, err := o.copyTree(ctx, source, destination)
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{
		"copied":      true,
		"source":      source,
		"destination": destination,
		"nodes":       copied,
	})
}

// Move copies a node then removes the source
func (o *OperationsOps) Move(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	source, ok := o.pathParam(params, "source")
	if !ok {
		return missing("source")
	}
	destination, ok := o.pathParam(params, "destination")
	if !ok {
		return missing("destination")
	}

	if err := o.move(ctx, source, destination); err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"moved": true, "source": source, "destination": destination})
}

// Rename moves a node within its parent directory
func (o *OperationsOps) Rename(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := o.pathParam(params, "path")
	if !ok {
		return missing("path")
	}
	newName, ok := params["new_name"].(string)
	if !ok || newName == "" {
		return missing("new_name")
	}
	if strings.ContainsAny(newName, `/\`) || newName == "." || newName == ".." {
		return types.Failure("new_name must be a single path segment")
	}

	destination := vfs.Resolve(newName, vfs.Dir(path))
	if err := o.move(ctx, path, destination); err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"renamed": true, "path": path, "new_path": destination})
}

func (o *OperationsOps) move(ctx context.Context, source, destination string) error {
	var nodes []vfs.Entry
	err := o.FS.Walk(source, "/", func(entry vfs.Entry) error {
		nodes = append(nodes, entry)
		return nil
	})
	if err != nil {
		return err
	}

	if _, err := o.copyTree(ctx, source, destination); err != nil {
		return err
	}

	// Children before parents so every directory is empty when removed.
	for i := len(nodes) - 1; i >= 0; i-- {
		if err := o.FS.Remove(nodes[i].Path, "/"); err != nil {
			return err
		}
	}
	return nil
}

// copyTree replicates source at destination and returns the number of nodes written.
func (o *OperationsOps) copyTree(ctx context.Context, source, destination string) (int, error) {
	if source == "/" {
		return 0, fmt.Errorf("cannot copy the root directory")
	}
	if destination == source || strings.HasPrefix(destination, source+"/") {
		return 0, fmt.Errorf("cannot copy %s into itself", source)
	}
	if _, exists := o.FS.Stat(destination, "/"); exists {
		return 0, fmt.Errorf("destination already exists: %s", destination)
	}

	count := 0
	err := o.FS.Walk(source, "/", func(entry vfs.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		target := destination + strings.TrimPrefix(entry.Path, source)
		if entry.IsDir() {
			if _, err := o.FS.MakeDir(target, "/"); err != nil {
				return err
			}
		} else {
			content, err := o.FS.ReadFile(entry.Path, "/")
			if err != nil {
				return err
			}
			if _, err := o.FS.WriteFile(target, "/", content); err != nil {
				return err
			}
		}
		count++
		return nil
	})
	return count, err
}
