package files

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Provider exposes file browser windows as a service
type Provider struct {
	manager *Manager
}

// NewProvider creates a files provider
func NewProvider(manager *Manager) *Provider {
	return &Provider{manager: manager}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	windowArg := types.Parameter{
		Name: "window_id", Type: "string", Description: "Browser window ID (defaults to the caller's window)", Required: false,
	}

	return types.Service{
		ID:          "files",
		Name:        "Files",
		Description: "File browser windows with back, forward and up navigation over the desktop filesystem",
		Category:    types.CategoryDesktop,
		Capabilities: []string{
			"browse",
			"navigation_history",
			"new_folder",
			"new_file",
			"preview",
			"change_tracking",
		},
		Tools: []types.Tool{
			{
				ID:          "files.open",
				Name:        "Open Window",
				Description: "Open a browser window",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Starting directory (defaults to home)", Required: false},
				},
				Returns: "view",
			},
			{ID: "files.close", Name: "Close Window", Description: "Close a browser window", Parameters: []types.Parameter{windowArg}, Returns: "boolean"},
			{ID: "files.view", Name: "View", Description: "Render the current directory", Parameters: []types.Parameter{windowArg}, Returns: "view"},
			{
				ID:          "files.navigate",
				Name:        "Navigate",
				Description: "Open a directory, absolute or relative to the current one",
				Parameters: []types.Parameter{
					windowArg,
					{Name: "path", Type: "string", Description: "Directory", Required: true},
				},
				Returns: "view",
			},
			{ID: "files.back", Name: "Back", Description: "Go back in the window history", Parameters: []types.Parameter{windowArg}, Returns: "view"},
			{ID: "files.forward", Name: "Forward", Description: "Go forward in the window history", Parameters: []types.Parameter{windowArg}, Returns: "view"},
			{ID: "files.up", Name: "Up", Description: "Go to the parent directory", Parameters: []types.Parameter{windowArg}, Returns: "view"},
			{
				ID:          "files.new_folder",
				Name:        "New Folder",
				Description: "Create a folder in the current directory",
				Parameters: []types.Parameter{
					windowArg,
					{Name: "name", Type: "string", Description: "Folder name (default \"New Folder\")", Required: false},
				},
				Returns: "view",
			},
			{
				ID:          "files.new_file",
				Name:        "New Text File",
				Description: "Create an empty text file and open it in the editor",
				Parameters: []types.Parameter{
					windowArg,
					{Name: "name", Type: "string", Description: "File name (default \"New Document.txt\")", Required: false},
				},
				Returns: "view",
			},
			{
				ID:          "files.activate",
				Name:        "Activate Item",
				Description: "Open a folder, edit a text file or preview anything else",
				Parameters: []types.Parameter{
					windowArg,
					{Name: "path", Type: "string", Description: "Item path", Required: true},
				},
				Returns: "activation",
			},
			{ID: "files.list_windows", Name: "List Windows", Description: "List open browser windows", Parameters: []types.Parameter{}, Returns: "array"},
		},
	}
}

// Execute routes to appropriate operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "files.open":
		start, _ := params["path"].(string)
		return viewResult(p.manager.Open(start))
	case "files.list_windows":
		windows := p.manager.Windows()
		return types.Success(map[string]interface{}{"windows": windows, "count": len(windows)})
	}

	windowID := windowParam(params, appCtx)
	if windowID == "" {
		return types.Failure("window_id is required")
	}

	switch toolID {
	case "files.close":
		if err := p.manager.Close(windowID); err != nil {
			return types.Failure(err.Error())
		}
		return types.Success(map[string]interface{}{"closed": true, "window_id": windowID})
	case "files.view":
		return viewResult(p.manager.View(windowID))
	case "files.navigate":
		path, ok := params["path"].(string)
		if !ok || path == "" {
			return types.Failure("path parameter required")
		}
		return viewResult(p.manager.Navigate(windowID, path))
	case "files.back":
		return viewResult(p.manager.Back(windowID))
	case "files.forward":
		return viewResult(p.manager.Forward(windowID))
	case "files.up":
		return viewResult(p.manager.Up(windowID))
	case "files.new_folder":
		name, _ := params["name"].(string)
		return p.created(windowID)(p.manager.NewFolder(windowID, name))
	case "files.new_file":
		name, _ := params["name"].(string)
		return p.created(windowID)(p.manager.NewFile(windowID, name))
	case "files.activate":
		path, ok := params["path"].(string)
		if !ok || path == "" {
			return types.Failure("path parameter required")
		}
		activation, err := p.manager.Activate(windowID, path)
		if err != nil {
			return types.Failure(err.Error())
		}
		data := map[string]interface{}{
			"action": activation.Action,
			"path":   activation.Path,
		}
		if activation.Notice != "" {
			data["notice"] = activation.Notice
			data["mime_type"] = activation.MimeType
		}
		if activation.View != nil {
			data["view"] = *activation.View
		}
		return types.Success(data)
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}

// created reports a new node together with the refreshed view.
func (p *Provider) created(windowID string) func(string, error) (*types.Result, error) {
	return func(path string, err error) (*types.Result, error) {
		if err != nil {
			return types.Failure(err.Error())
		}
		view, err := p.manager.View(windowID)
		if err != nil {
			return types.Failure(err.Error())
		}
		return types.Success(map[string]interface{}{"created": path, "view": view})
	}
}

func viewResult(view View, err error) (*types.Result, error) {
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{"view": view})
}

func windowParam(params map[string]interface{}, appCtx *types.Context) string {
	if wid, ok := params["window_id"].(string); ok && wid != "" {
		return wid
	}
	if appCtx != nil && appCtx.WindowID != nil {
		return *appCtx.WindowID
	}
	return ""
}
