package filesystem

import (
	"context"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// DirectoryOps handles directory operations
type DirectoryOps struct {
	*FilesystemOps
}

// GetTools returns directory operation tool definitions
func (d *DirectoryOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.list",
			Name:        "List Directory",
			Description: "List a directory, folders first, then files",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path (defaults to home)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.mkdir",
			Name:        "Create Directory",
			Description: "Create a directory and any missing parents",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "boolean",
		},
		{
			ID:          "filesystem.resolve",
			Name:        "Resolve Path",
			Description: "Canonicalize a path against a working directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Path to resolve", Required: true},
				{Name: "cwd", Type: "string", Description: "Working directory (defaults to home)", Required: false},
			},
			Returns: "string",
		},
		{
			ID:          "filesystem.walk",
			Name:        "Walk Directory",
			Description: "List every node beneath a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
				{Name: "max_depth", Type: "number", Description: "Maximum depth below path (0 for unlimited)", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.tree",
			Name:        "Directory Tree",
			Description: "Nested tree of a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Directory path", Required: true},
			},
			Returns: "object",
		},
	}
}

// List returns the entries of a directory
func (d *DirectoryOps) List(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := d.pathParam(params, "path")
	if !ok {
		path = d.Home
	}

	entries, err := d.FS.List(path, "/")
	if err != nil {
		return types.Failure(err.Error())
	}

	files := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		files = append(files, d.info(entry))
	}

	return types.Success(map[string]interface{}{
		"path":    path,
		"display": vfs.DisplayPath(path, d.Home),
		"entries": files,
		"count":   len(files),
	})
}

// Create makes a directory chain
func (d *DirectoryOps) Create(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	path, ok := d.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	created, err := d.FS.MakeDir(path, "/")
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"created": true, "path": created})
}

// Resolve canonicalizes a path without touching the tree
func (d *DirectoryOps) Resolve(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	raw, ok := params["path"].(string)
	if !ok {
		return missing("path")
	}

	path := d.resolvePath(raw, params)
	return types.Success(map[string]interface{}{
		"path":    path,
		"display": vfs.DisplayPath(path, d.Home),
	})
}

// Walk lists every node beneath path in listing order
func (d *DirectoryOps) Walk(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	root, ok := d.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	maxDepth := 0
	if md, ok := params["max_depth"].(float64); ok && md > 0 {
		maxDepth = int(md)
	}
	rootDepth := len(vfs.Normalize(root, "/"))

	files := []FileInfo{}
	err := d.FS.Walk(root, "/", func(entry vfs.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.Path == root {
			return nil
		}
		depth := len(vfs.Normalize(entry.Path, "/")) - rootDepth
		if maxDepth > 0 && depth > maxDepth {
			if entry.IsDir() {
				return vfs.SkipDir
			}
			return nil
		}
		files = append(files, d.info(entry))
		return nil
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"path": root, "entries": files, "count": len(files)})
}

// treeNode is one level of the nested tree view
type treeNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	IsDir    bool        `json:"is_dir"`
	Size     int64       `json:"size,omitempty"`
	Children []*treeNode `json:"children,omitempty"`
}

// Tree builds a nested view of a directory
func (d *DirectoryOps) Tree(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	root, ok := d.pathParam(params, "path")
	if !ok {
		return missing("path")
	}

	nodes := map[string]*treeNode{}
	var top *treeNode
	err := d.FS.Walk(root, "/", func(entry vfs.Entry) error {
		node := &treeNode{Name: entry.Name, Path: entry.Path, IsDir: entry.IsDir(), Size: entry.Size}
		nodes[entry.Path] = node
		if top == nil {
			top = node
			return nil
		}
		if parent, ok := nodes[vfs.Dir(entry.Path)]; ok {
			parent.Children = append(parent.Children, node)
		}
		return nil
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"path": root, "tree": top, "nodes": len(nodes)})
}
