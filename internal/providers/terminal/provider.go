package terminal

import (
	"context"
	"fmt"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
	"github.com/GriffinCanCode/WebDesk/backend/internal/shell"
)

// Provider implements terminal emulator operations
type Provider struct {
	manager *Manager
}

// NewProvider creates a terminal provider over a session manager
func NewProvider(manager *Manager) *Provider {
	return &Provider{manager: manager}
}

// Manager exposes the session manager for the websocket stream.
func (p *Provider) Manager() *Manager {
	return p.manager
}

// Definition returns service metadata
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "terminal",
		Name:        "Terminal Service",
		Description: "Simulated shell sessions over the shared desktop filesystem",
		Category:    types.CategoryTerminal,
		Capabilities: []string{
			"shell",
			"sessions",
			"history",
			"commands",
		},
		Tools: p.getTools(),
		DataModels: []types.DataModel{
			{
				Name: "line",
				Fields: map[string]string{
					"kind": "command | output | error | clear",
					"text": "string",
				},
			},
		},
	}
}

// Execute routes to appropriate operation
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if toolID == "terminal.create_session" {
		return types.Success(infoData(p.manager.CreateSession()))
	}
	if toolID == "terminal.list_sessions" {
		sessions := p.manager.ListSessions()
		return types.Success(map[string]interface{}{
			"sessions": sessions,
			"count":    len(sessions),
		})
	}

	sessionID := sessionParam(params, appCtx)
	if sessionID == "" {
		return types.Failure("session_id is required")
	}

	switch toolID {
	case "terminal.execute":
		return p.execute(sessionID, params)
	case "terminal.read":
		lines, err := p.manager.Read(sessionID)
		if err != nil {
			return types.Failure(err.Error())
		}
		return types.Success(linesData(lines, ""))
	case "terminal.history":
		history, cursor, err := p.manager.History(sessionID)
		if err != nil {
			return types.Failure(err.Error())
		}
		return types.Success(map[string]interface{}{
			"history": history,
			"cursor":  cursor,
		})
	case "terminal.history_prev":
		return p.historyStep(p.manager.HistoryPrev(sessionID))
	case "terminal.history_next":
		return p.historyStep(p.manager.HistoryNext(sessionID))
	case "terminal.get_session":
		info, err := p.manager.GetSession(sessionID)
		if err != nil {
			return types.Failure(err.Error())
		}
		return types.Success(infoData(info))
	case "terminal.kill":
		if err := p.manager.Kill(sessionID); err != nil {
			return types.Failure(err.Error())
		}
		return types.Success(map[string]interface{}{"killed": true, "session_id": sessionID})
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}

func (p *Provider) execute(sessionID string, params map[string]interface{}) (*types.Result, error) {
	input, ok := params["input"].(string)
	if !ok {
		return types.Failure("input is required")
	}

	lines, err := p.manager.Execute(sessionID, input)
	if err != nil {
		return types.Failure(err.Error())
	}

	info, err := p.manager.GetSession(sessionID)
	if err != nil {
		return types.Failure(err.Error())
	}
	data := linesData(lines, info.Prompt)
	data["cwd"] = info.Cwd
	return types.Success(data)
}

func (p *Provider) historyStep(line string, err error) (*types.Result, error) {
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{"line": line})
}

// sessionParam prefers an explicit session_id over the caller's context.
func sessionParam(params map[string]interface{}, appCtx *types.Context) string {
	if sid, ok := params["session_id"].(string); ok && sid != "" {
		return sid
	}
	if appCtx != nil && appCtx.SessionID != nil {
		return *appCtx.SessionID
	}
	return ""
}

func linesData(lines []shell.Line, prompt string) map[string]interface{} {
	data := map[string]interface{}{
		"lines": lines,
		"count": len(lines),
	}
	if prompt != "" {
		data["prompt"] = prompt
	}
	return data
}

func infoData(info SessionInfo) map[string]interface{} {
	return map[string]interface{}{
		"id":          info.ID,
		"prompt":      info.Prompt,
		"cwd":         info.Cwd,
		"commands":    info.Commands,
		"buffered":    info.Buffered,
		"started_at":  info.StartedAt,
		"last_active": info.LastActive,
	}
}

func (p *Provider) getTools() []types.Tool {
	sessionArg := types.Parameter{
		Name:        "session_id",
		Type:        "string",
		Description: "Terminal session ID (defaults to the caller's session)",
		Required:    false,
	}

	return []types.Tool{
		{
			ID:          "terminal.create_session",
			Name:        "Create Terminal Session",
			Description: "Start a new shell session in the home directory",
			Parameters:  []types.Parameter{},
			Returns:     "session_info",
		},
		{
			ID:          "terminal.execute",
			Name:        "Execute Command",
			Description: "Run one command line and return the rendered lines",
			Parameters: []types.Parameter{
				sessionArg,
				{Name: "input", Type: "string", Description: "Command line to run", Required: true},
			},
			Returns: "lines",
		},
		{
			ID:          "terminal.read",
			Name:        "Read from Terminal",
			Description: "Drain buffered output lines from a session",
			Parameters:  []types.Parameter{sessionArg},
			Returns:     "lines",
		},
		{
			ID:          "terminal.history",
			Name:        "Command History",
			Description: "List recorded input lines and the history cursor",
			Parameters:  []types.Parameter{sessionArg},
			Returns:     "array",
		},
		{
			ID:          "terminal.history_prev",
			Name:        "Previous Command",
			Description: "Move the history cursor back and return that line",
			Parameters:  []types.Parameter{sessionArg},
			Returns:     "string",
		},
		{
			ID:          "terminal.history_next",
			Name:        "Next Command",
			Description: "Move the history cursor forward and return that line",
			Parameters:  []types.Parameter{sessionArg},
			Returns:     "string",
		},
		{
			ID:          "terminal.list_sessions",
			Name:        "List Terminal Sessions",
			Description: "List all active terminal sessions",
			Parameters:  []types.Parameter{},
			Returns:     "sessions_list",
		},
		{
			ID:          "terminal.get_session",
			Name:        "Get Session Info",
			Description: "Get information about a terminal session",
			Parameters:  []types.Parameter{sessionArg},
			Returns:     "session_info",
		},
		{
			ID:          "terminal.kill",
			Name:        "Kill Terminal Session",
			Description: "Terminate a terminal session",
			Parameters:  []types.Parameter{sessionArg},
			Returns:     "success",
		},
	}
}
