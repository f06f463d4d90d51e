package filesystem

import (
	"context"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// maxMatchesPerFile caps find_text results for a single file.
const maxMatchesPerFile = 100

// SearchOps handles file search and filtering
type SearchOps struct {
	*FilesystemOps
}

// GetTools returns search tool definitions
func (s *SearchOps) GetTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "filesystem.glob",
			Name:        "Glob Match",
			Description: "Match paths below a directory with ** glob patterns",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Search root (defaults to home)", Required: false},
				{Name: "pattern", Type: "string", Description: "Glob pattern relative to the root, e.g. **/*.txt", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.find",
			Name:        "Find by Name",
			Description: "Find files whose name matches a pattern",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Search root (defaults to home)", Required: false},
				{Name: "pattern", Type: "string", Description: "Name pattern, e.g. *.md", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.find_text",
			Name:        "Search Content",
			Description: "Search text files for a substring",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Search root (defaults to home)", Required: false},
				{Name: "query", Type: "string", Description: "Text to find", Required: true},
				{Name: "ignore_case", Type: "boolean", Description: "Case-insensitive match", Required: false},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.filter_by_extension",
			Name:        "Filter by Extension",
			Description: "List files with one of the given extensions",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Search root (defaults to home)", Required: false},
				{Name: "extensions", Type: "array", Description: "Extensions with or without the dot", Required: true},
			},
			Returns: "array",
		},
		{
			ID:          "filesystem.recent_files",
			Name:        "Recent Files",
			Description: "Most recently modified files",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Description: "Search root (defaults to home)", Required: false},
				{Name: "limit", Type: "number", Description: "Maximum results (default 10)", Required: false},
			},
			Returns: "array",
		},
	}
}

func (s *SearchOps) root(params map[string]interface{}) string {
	if path, ok := s.pathParam(params, "path"); ok {
		return path
	}
	return s.Home
}

// relative returns p below root without a leading slash.
func relative(root, p string) string {
	if root == "/" {
		return strings.TrimPrefix(p, "/")
	}
	return strings.TrimPrefix(p, root+"/")
}

// Glob matches paths below root against a doublestar pattern
func (s *SearchOps) Glob(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	pattern, ok := params["pattern"].(string)
	if !ok || pattern == "" {
		return missing("pattern")
	}
	pattern = strings.TrimPrefix(pattern, "/")
	if !doublestar.ValidatePattern(pattern) {
		return types.Failure("invalid glob pattern: " + pattern)
	}

	root := s.root(params)
	matches := []string{}
	err := s.FS.Walk(root, "/", func(entry vfs.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.Path == root {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, relative(root, entry.Path)); ok {
			matches = append(matches, entry.Path)
		}
		return nil
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"path": root, "pattern": pattern, "matches": matches, "count": len(matches)})
}

// Find matches file names
func (s *SearchOps) Find(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	pattern, ok := params["pattern"].(string)
	if !ok || pattern == "" {
		return missing("pattern")
	}

	root := s.root(params)
	matches := []string{}
	err := s.FS.Walk(root, "/", func(entry vfs.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if ok, _ := doublestar.Match(pattern, entry.Name); ok {
			matches = append(matches, entry.Path)
		}
		return nil
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"path": root, "matches": matches, "count": len(matches)})
}

// FindText searches text files line by line
func (s *SearchOps) FindText(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	query, ok := params["query"].(string)
	if !ok || query == "" {
		return missing("query")
	}
	ignoreCase, _ := params["ignore_case"].(bool)
	needle := query
	if ignoreCase {
		needle = strings.ToLower(query)
	}

	root := s.root(params)
	results := []map[string]interface{}{}
	err := s.FS.Walk(root, "/", func(entry vfs.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if entry.IsDir() || !vfs.IsText(entry.Path) {
			return nil
		}

		content, err := s.FS.ReadFile(entry.Path, "/")
		if err != nil {
			// Removed since the walk snapshot was taken.
			return nil
		}

		lines := []map[string]interface{}{}
		for i, line := range strings.Split(content, "\n") {
			haystack := line
			if ignoreCase {
				haystack = strings.ToLower(line)
			}
			if strings.Contains(haystack, needle) {
				lines = append(lines, map[string]interface{}{"line": i + 1, "content": line})
				if len(lines) >= maxMatchesPerFile {
					break
				}
			}
		}
		if len(lines) > 0 {
			results = append(results, map[string]interface{}{
				"path":    entry.Path,
				"matches": lines,
				"count":   len(lines),
			})
		}
		return nil
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"path": root, "query": query, "results": results, "files": len(results)})
}

// FilterByExtension lists files with matching extensions
func (s *SearchOps) FilterByExtension(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	extArr, ok := params["extensions"].([]interface{})
	if !ok || len(extArr) == 0 {
		return types.Failure("extensions array required")
	}

	extensions := make(map[string]bool)
	for _, ext := range extArr {
		if e, ok := ext.(string); ok {
			extensions[strings.ToLower(strings.TrimPrefix(e, "."))] = true
		}
	}

	root := s.root(params)
	files := []FileInfo{}
	err := s.FS.Walk(root, "/", func(entry vfs.Entry) error {
		if !entry.IsDir() && extensions[vfs.Ext(entry.Path)] {
			files = append(files, s.info(entry))
		}
		return nil
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	return types.Success(map[string]interface{}{"path": root, "files": files, "count": len(files)})
}

// RecentFiles returns files ordered by modification time, newest first
func (s *SearchOps) RecentFiles(ctx context.Context, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	limit := 10
	if l, ok := params["limit"].(float64); ok && l > 0 {
		limit = int(l)
	}

	root := s.root(params)
	files := []FileInfo{}
	err := s.FS.Walk(root, "/", func(entry vfs.Entry) error {
		if !entry.IsDir() {
			files = append(files, s.info(entry))
		}
		return nil
	})
	if err != nil {
		return types.Failure(err.Error())
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})
	if len(files) > limit {
		files = files[:limit]
	}

	return types.Success(map[string]interface{}{"path": root, "files": files, "count": len(files)})
}
