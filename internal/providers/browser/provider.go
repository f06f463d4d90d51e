package browser

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// DefaultTab keys the tab used when a call names no window.
const DefaultTab = "default"

// Provider implements the browser tab service
type Provider struct {
	renderer *Renderer
	mu       sync.RWMutex
	tabs     map[string]*Tab
}

// Tab holds the state of one browser window
type Tab struct {
	mu      sync.RWMutex
	id      string
	current Page
	history []string
	opened  []string
	updated time.Time
}

// New creates a browser provider
func New() *Provider {
	return &Provider{
		renderer: NewRenderer(),
		tabs:     make(map[string]*Tab),
	}
}

// Definition returns service definition
func (p *Provider) Definition() types.Service {
	return types.Service{
		ID:          "browser",
		Name:        "Web Browser",
		Category:    types.CategoryBrowser,
		Description: "Sandboxed browser tab with internal about: pages and external hand-off",
		Capabilities: []string{
			"internal_pages",
			"external_handoff",
			"search",
			"sanitize",
		},
		Tools: p.getTools(),
	}
}

func (p *Provider) getTools() []types.Tool {
	tabArg := types.Parameter{Name: "window_id", Type: "string", Description: "Browser window ID (defaults to the caller's window)", Required: false}

	return []types.Tool{
		{
			ID:          "browser.navigate",
			Name:        "Navigate",
			Description: "Load an address; about: pages render in the tab, everything else opens externally",
			Parameters: []types.Parameter{
				{Name: "url", Type: "string", Description: "Address", Required: true},
				tabArg,
			},
			Returns: "page",
		},
		{
			ID:          "browser.search",
			Name:        "Search",
			Description: "Search the web in a new tab",
			Parameters: []types.Parameter{
				{Name: "query", Type: "string", Description: "Search terms", Required: true},
				tabArg,
			},
			Returns: "page",
		},
		{ID: "browser.home", Name: "Home", Description: "Show the homepage", Parameters: []types.Parameter{tabArg}, Returns: "page"},
		{ID: "browser.back", Name: "Back", Description: "Return to the previous address", Parameters: []types.Parameter{tabArg}, Returns: "page"},
		{ID: "browser.get_session", Name: "Get Session Info", Description: "Current page and history of a tab", Parameters: []types.Parameter{tabArg}, Returns: "object"},
		{ID: "browser.pages", Name: "Internal Pages", Description: "List about: pages and homepage shortcuts", Parameters: []types.Parameter{}, Returns: "object"},
	}
}

// Execute routes tool calls
func (p *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	if toolID == "browser.pages" {
		return types.Success(map[string]interface{}{
			"pages":     InternalAddresses(),
			"home":      HomeAddress,
			"shortcuts": Shortcuts,
		})
	}

	tab := p.getOrCreateTab(tabParam(params, appCtx))

	switch toolID {
	case "browser.navigate":
		address, _ := params["url"].(string)
		return p.show(tab, address)
	case "browser.search":
		query, _ := params["query"].(string)
		page, err := p.renderer.Search(query)
		if errors.Is(err, ErrEmptyAddress) {
			return types.Failure("query parameter required")
		}
		if err != nil {
			return types.Failure(err.Error())
		}
		tab.mu.Lock()
		tab.opened = append(tab.opened, page.External)
		tab.current = page
		tab.updated = time.Now()
		tab.mu.Unlock()
		return pageResult(tab.id, page)
	case "browser.home":
		return p.show(tab, HomeAddress)
	case "browser.back":
		tab.mu.Lock()
		if len(tab.history) < 2 {
			tab.mu.Unlock()
			return types.Failure("no previous page")
		}
		tab.history = tab.history[:len(tab.history)-1]
		previous := tab.history[len(tab.history)-1]
		tab.history = tab.history[:len(tab.history)-1]
		tab.mu.Unlock()
		return p.show(tab, previous)
	case "browser.get_session":
		tab.mu.RLock()
		defer tab.mu.RUnlock()
		return types.Success(map[string]interface{}{
			"window_id": tab.id,
			"page":      tab.current,
			"history":   append([]string(nil), tab.history...),
			"opened":    append([]string(nil), tab.opened...),
			"updated":   tab.updated,
		})
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}

func (p *Provider) show(tab *Tab, address string) (*types.Result, error) {
	page, err := p.renderer.Load(address)
	if errors.Is(err, ErrEmptyAddress) {
		return types.Failure("url parameter required")
	}
	if err != nil {
		return types.Failure(err.Error())
	}

	tab.mu.Lock()
	tab.current = page
	tab.history = append(tab.history, page.Address)
	if page.External != "" {
		tab.opened = append(tab.opened, page.External)
	}
	tab.updated = time.Now()
	tab.mu.Unlock()

	return pageResult(tab.id, page)
}

// getOrCreateTab returns the tab for a window, creating it on the homepage
func (p *Provider) getOrCreateTab(id string) *Tab {
	p.mu.RLock()
	tab, ok := p.tabs[id]
	p.mu.RUnlock()
	if ok {
		return tab
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if tab, ok := p.tabs[id]; ok {
		return tab
	}
	home, _ := p.renderer.Load(HomeAddress)
	tab = &Tab{id: id, current: home, history: []string{HomeAddress}, updated: time.Now()}
	p.tabs[id] = tab
	return tab
}

func pageResult(tabID string, page Page) (*types.Result, error) {
	return types.Success(map[string]interface{}{
		"window_id": tabID,
		"page":      page,
	})
}

func tabParam(params map[string]interface{}, appCtx *types.Context) string {
	if wid, ok := params["window_id"].(string); ok && wid != "" {
		return wid
	}
	if appCtx != nil && appCtx.WindowID != nil {
		return *appCtx.WindowID
	}
	return DefaultTab
}
