package filesystem

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// Provider exposes the desktop filesystem as a service
type Provider struct {
	basic      *BasicOps
	directory  *DirectoryOps
	operations *OperationsOps
	metadata   *MetadataOps
	search     *SearchOps
	formats    *FormatsOps
	archives   *ArchivesOps
}

// NewProvider creates a filesystem provider over fs. Relative paths start at home.
func NewProvider(fs *vfs.FileSystem, home string) *Provider {
	ops := NewFilesystemOps(fs, home)

	return &Provider{
		basic:      &BasicOps{FilesystemOps: ops},
		directory:  &DirectoryOps{FilesystemOps: ops},
		operations: &OperationsOps{FilesystemOps: ops},
		metadata:   &MetadataOps{FilesystemOps: ops},
		search:     &SearchOps{FilesystemOps: ops},
		formats:    &FormatsOps{FilesystemOps: ops},
		archives:   &ArchivesOps{FilesystemOps: ops},
	}
}

// Definition returns service metadata with all module tools
func (p *Provider) Definition() types.Service {
	tools := []types.Tool{}
	tools = append(tools, p.basic.GetTools()...)
	tools = append(tools, p.directory.GetTools()...)
	tools = append(tools, p.operations.GetTools()...)
	tools = append(tools, p.metadata.GetTools()...)
	tools = append(tools, p.search.GetTools()...)
	tools = append(tools, p.formats.GetTools()...)
	tools = append(tools, p.archives.GetTools()...)

	return types.Service{
		ID:          "filesystem",
		Name:        "Filesystem Service",
		Description: "File and directory operations on the shared desktop filesystem",
		Category:    types.CategoryFilesystem,
		Capabilities: []string{
			"read",
			"write",
			"create",
			"delete",
			"list",
			"stat",
			"move",
			"copy",
			"glob",
			"content_search",
			"mime_detection",
			"charset_detection",
			"structured_formats",
			"archives",
		},
		Tools: tools,
		DataModels: []types.DataModel{
			{
				Name: "file_info",
				Fields: map[string]string{
					"name":      "string",
					"path":      "string",
					"display":   "string",
					"size":      "number",
					"is_dir":    "boolean",
					"modified":  "timestamp",
					"extension": "string",
					"text":      "boolean",
				},
			},
		},
	}
}

// Execute routes to appropriate module
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	// Basic operations
	case "filesystem.read":
		return p.basic.Read(ctx, params, appCtx)
	case "filesystem.write":
		return p.basic.Write(ctx, params, appCtx)
	case "filesystem.append":
		return p.basic.Append(ctx, params, appCtx)
	case "filesystem.create":
		return p.basic.Create(ctx, params, appCtx)
	case "filesystem.delete":
		return p.basic.Delete(ctx, params, appCtx)
	case "filesystem.exists":
		return p.basic.Exists(ctx, params, appCtx)
	case "filesystem.is_text":
		return p.basic.IsText(ctx, params, appCtx)
	case "filesystem.read_lines":
		return p.basic.ReadLines(ctx, params, appCtx)
	case "filesystem.write_lines":
		return p.basic.WriteLines(ctx, params, appCtx)

	// Directory operations
	case "filesystem.list":
		return p.directory.List(ctx, params, appCtx)
	case "filesystem.mkdir":
		return p.directory.Create(ctx, params, appCtx)
	case "filesystem.resolve":
		return p.directory.Resolve(ctx, params, appCtx)
	case "filesystem.walk":
		return p.directory.Walk(ctx, params, appCtx)
	case "filesystem.tree":
		return p.directory.Tree(ctx, params, appCtx)

	// Copy, move, rename
	case "filesystem.copy":
		return p.operations.Copy(ctx, params, appCtx)
	case "filesystem.move":
		return p.operations.Move(ctx, params, appCtx)
	case "filesystem.rename":
		return p.operations.Rename(ctx, params, appCtx)

	// Metadata
	case "filesystem.stat":
		return p.metadata.Stat(ctx, params, appCtx)
	case "filesystem.size_human":
		return p.metadata.SizeHuman(ctx, params, appCtx)
	case "filesystem.total_size":
		return p.metadata.TotalSize(ctx, params, appCtx)
	case "filesystem.mime_type":
		return p.metadata.MIMEType(ctx, params, appCtx)
	case "filesystem.detect_encoding":
		return p.metadata.DetectEncoding(ctx, params, appCtx)

	// Search
	case "filesystem.glob":
		return p.search.Glob(ctx, params, appCtx)
	case "filesystem.find":
		return p.search.Find(ctx, params, appCtx)
	case "filesystem.find_text":
		return p.search.FindText(ctx, params, appCtx)
	case "filesystem.filter_by_extension":
		return p.search.FilterByExtension(ctx, params, appCtx)
	case "filesystem.recent_files":
		return p.search.RecentFiles(ctx, params, appCtx)

	// Structured formats
	case "filesystem.read_json":
		return p.formats.Read(ctx, "json", params)
	case "filesystem.write_json":
		return p.formats.Write(ctx, "json", params)
	case "filesystem.read_yaml":
		return p.formats.Read(ctx, "yaml", params)
	case "filesystem.write_yaml":
		return p.formats.Write(ctx, "yaml", params)
	case "filesystem.read_toml":
		return p.formats.Read(ctx, "toml", params)
	case "filesystem.write_toml":
		return p.formats.Write(ctx, "toml", params)
	case "filesystem.convert":
		return p.formats.Convert(ctx, params, appCtx)

	// Archives
	case "filesystem.export":
		return p.archives.Export(ctx, params, appCtx)
	case "filesystem.import":
		return p.archives.Import(ctx, params, appCtx)
	case "filesystem.archive_list":
		return p.archives.List(ctx, params, appCtx)

	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}
