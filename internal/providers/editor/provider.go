package editor

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Provider exposes the text editor as a service
type Provider struct {
	editor *Editor
}

// NewProvider creates an editor provider
func NewProvider(editor *Editor) *Provider {
	return &Provider{editor: editor}
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "editor",
		Name:        "Text Editor",
		Description: "Single-document plain text editor over the desktop filesystem",
		Category:    types.CategoryDesktop,
		Capabilities: []string{
			"open",
			"save",
			"save_as",
			"draft_recovery",
			"external_reload",
		},
		Tools: []types.Tool{
			{
				ID:          "editor.open",
				Name:        "Open File",
				Description: "Open an absolute path to a text file",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "File path", Required: true},
				},
				Returns: "state",
			},
			{
				ID:          "editor.open_dialog",
				Name:        "Open Dialog",
				Description: "Open a typed path; ~ is home and relative paths start beside the open file",
				Parameters: []types.Parameter{
					{Name: "input", Type: "string", Description: "Typed path (blank cancels)", Required: false},
				},
				Returns: "state",
			},
			{
				ID:          "editor.update",
				Name:        "Update",
				Description: "Replace the buffer contents",
				Parameters: []types.Parameter{
					{Name: "content", Type: "string", Description: "Buffer text", Required: true},
				},
				Returns: "state",
			},
			{
				ID:          "editor.save",
				Name:        "Save",
				Description: "Save the open file, or save an untitled document to path",
				Parameters: []types.Parameter{
					{Name: "path", Type: "string", Description: "Target for untitled documents", Required: false},
				},
				Returns: "state",
			},
			{
				ID:          "editor.save_as",
				Name:        "Save As",
				Description: "Save the buffer to a typed path",
				Parameters: []types.Parameter{
					{Name: "input", Type: "string", Description: "Typed path (blank cancels)", Required: false},
				},
				Returns: "state",
			},
			{ID: "editor.new", Name: "New Document", Description: "Start an untitled document", Parameters: []types.Parameter{}, Returns: "state"},
			{ID: "editor.state", Name: "State", Description: "Current document", Parameters: []types.Parameter{}, Returns: "state"},
		},
	}
}

// Execute runs an editor operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "editor.open":
		path, ok := params["path"].(string)
		if !ok || path == "" {
			return types.Failure("path parameter required")
		}
		if err := p.editor.Open(path); err != nil {
			return types.Failure(err.Error())
		}
		return stateResult(p.editor.State())
	case "editor.open_dialog":
		input, _ := params["input"].(string)
		return stateResult(p.editor.OpenDialog(input))
	case "editor.update":
		content, ok := params["content"].(string)
		if !ok {
			return types.Failure("content parameter required")
		}
		return stateResult(p.editor.Update(content))
	case "editor.save":
		target, _ := params["path"].(string)
		return stateResult(p.editor.Save(target))
	case "editor.save_as":
		input, _ := params["input"].(string)
		return stateResult(p.editor.SaveAs(input))
	case "editor.new":
		return stateResult(p.editor.New())
	case "editor.state":
		return stateResult(p.editor.State())
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}

func stateResult(s State) (*types.Result, error) {
	return types.Success(map[string]interface{}{"state": s})
}
