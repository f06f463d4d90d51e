package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/GriffinCanCode/WebDesk/backend/internal/shared/types"
)

// Provider implements desktop settings
type Provider struct {
	store *Store
	now   func() time.Time
}

// NewProvider creates a settings provider
func NewProvider(store *Store) *Provider {
	return &Provider{store: store, now: time.Now}
}

// Definition returns service metadata
func (s *Provider) Definition() types.Service {
	return types.Service{
		ID:          "settings",
		Name:        "Settings",
		Description: "Desktop wallpaper, accent colour and clock preferences",
		Category:    types.CategorySettings,
		Capabilities: []string{
			"get",
			"set",
			"list",
			"reset",
			"export",
			"import",
			"appearance",
		},
		Tools: []types.Tool{
			{
				ID:          "settings.get",
				Name:        "Get Setting",
				Description: "Get a setting",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Setting key", Required: true},
				},
				Returns: "Setting",
			},
			{
				ID:          "settings.set",
				Name:        "Set Setting",
				Description: "Set a setting value",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Setting key", Required: true},
					{Name: "value", Type: "any", Description: "Setting value", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "settings.list",
				Name:        "List Settings",
				Description: "List settings optionally filtered by category",
				Parameters: []types.Parameter{
					{Name: "category", Type: "string", Description: "Category filter (optional)", Required: false},
				},
				Returns: "array",
			},
			{
				ID:          "settings.reset",
				Name:        "Reset Setting",
				Description: "Reset a setting to its default value",
				Parameters: []types.Parameter{
					{Name: "key", Type: "string", Description: "Setting key", Required: true},
				},
				Returns: "boolean",
			},
			{
				ID:          "settings.set_wallpaper",
				Name:        "Set Wallpaper",
				Description: "Choose wallpaper a, b, c or d",
				Parameters: []types.Parameter{
					{Name: "wallpaper", Type: "string", Description: "Wallpaper key", Required: true},
				},
				Returns: "appearance",
			},
			{
				ID:          "settings.set_accent",
				Name:        "Set Accent",
				Description: "Choose an accent theme: sunset, ocean, aurora or violet",
				Parameters: []types.Parameter{
					{Name: "accent", Type: "string", Description: "Accent key", Required: true},
				},
				Returns: "appearance",
			},
			{
				ID:          "settings.set_clock_format",
				Name:        "Set Clock Format",
				Description: "Switch the panel clock between 12 and 24 hours",
				Parameters: []types.Parameter{
					{Name: "use_24hr", Type: "boolean", Description: "Use a 24-hour clock", Required: true},
				},
				Returns: "appearance",
			},
			{
				ID:          "settings.format_clock",
				Name:        "Format Clock",
				Description: "Panel clock text for now, or for an RFC 3339 time",
				Parameters: []types.Parameter{
					{Name: "time", Type: "string", Description: "RFC 3339 time (optional)", Required: false},
				},
				Returns: "string",
			},
			{ID: "settings.appearance", Name: "Appearance", Description: "Resolved wallpaper class and accent colours", Parameters: []types.Parameter{}, Returns: "appearance"},
			{ID: "settings.themes", Name: "Themes", Description: "Available wallpapers and accents", Parameters: []types.Parameter{}, Returns: "object"},
			{ID: "settings.export", Name: "Export Settings", Description: "Export all settings as JSON", Parameters: []types.Parameter{}, Returns: "object"},
			{
				ID:          "settings.import",
				Name:        "Import Settings",
				Description: "Import settings from an object or a JSON document",
				Parameters: []types.Parameter{
					{Name: "settings", Type: "object", Description: "Settings to import", Required: false},
					{Name: "json", Type: "string", Description: "JSON document", Required: false},
				},
				Returns: "object",
			},
			{ID: "settings.categories", Name: "List Categories", Description: "Get all setting categories", Parameters: []types.Parameter{}, Returns: "array"},
		},
	}
}

// Execute runs a settings operation
func (s *Provider) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	switch toolID {
	case "settings.get":
		return s.get(params)
	case "settings.set":
		return s.set(params)
	case "settings.list":
		category, _ := params["category"].(string)
		settings := s.store.List(category)
		return types.Success(map[string]interface{}{"settings": settings, "count": len(settings)})
	case "settings.reset":
		return s.reset(params)
	case "settings.set_wallpaper":
		return s.apply(KeyWallpaper, params["wallpaper"], "Wallpaper updated.")
	case "settings.set_accent":
		return s.apply(KeyAccent, params["accent"], "Accent colour updated.")
	case "settings.set_clock_format":
		use24, ok := params["use_24hr"].(bool)
		if !ok {
			return types.Failure("use_24hr parameter required")
		}
		format := "12-hour"
		if use24 {
			format = "24-hour"
		}
		return s.apply(KeyClock24, use24, fmt.Sprintf("Clock format set to %s.", format))
	case "settings.format_clock":
		return s.formatClock(params)
	case "settings.appearance":
		return types.Success(map[string]interface{}{"appearance": s.store.Appearance()})
	case "settings.themes":
		return types.Success(map[string]interface{}{"wallpapers": Wallpapers, "accents": Accents})
	case "settings.export":
		return s.exportSettings()
	case "settings.import":
		return s.importSettings(params)
	case "settings.categories":
		return types.Success(map[string]interface{}{"categories": s.store.Categories()})
	default:
		return nil, fmt.Errorf("unknown tool: %s", toolID)
	}
}

func (s *Provider) get(params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return types.Failure("key parameter required")
	}
	setting, err := s.store.Get(key)
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{
		"key":         setting.Key,
		"value":       setting.Value,
		"type":        setting.Type,
		"category":    setting.Category,
		"description": setting.Description,
		"default":     setting.Default,
	})
}

func (s *Provider) set(params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return types.Failure("key parameter required")
	}
	value := params["value"]
	if value == nil {
		return types.Failure("value parameter required")
	}
	if err := s.store.Set(key, value); err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{"stored": true, "key": key})
}

func (s *Provider) reset(params map[string]interface{}) (*types.Result, error) {
	key, ok := params["key"].(string)
	if !ok || key == "" {
		return types.Failure("key parameter required")
	}
	setting, err := s.store.Reset(key)
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{"reset": true, "key": key, "value": setting.Value})
}

func (s *Provider) apply(key string, value interface{}, notice string) (*types.Result, error) {
	if err := s.store.Set(key, value); err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{
		"appearance": s.store.Appearance(),
		"notice":     notice,
	})
}

func (s *Provider) formatClock(params map[string]interface{}) (*types.Result, error) {
	at := s.now()
	if raw, ok := params["time"].(string); ok && raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return types.Failure(fmt.Sprintf("invalid time: %v", err))
		}
		at = parsed
	}
	return types.Success(map[string]interface{}{"text": s.store.FormatClock(at)})
}

func (s *Provider) exportSettings() (*types.Result, error) {
	document, err := s.store.Export()
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{"settings": s.store.Values(), "json": document})
}

func (s *Provider) importSettings(params map[string]interface{}) (*types.Result, error) {
	var (
		count    int
		rejected []string
		err      error
	)
	switch {
	case params["settings"] != nil:
		values, ok := params["settings"].(map[string]interface{})
		if !ok {
			return types.Failure("settings parameter must be an object")
		}
		count, rejected, err = s.store.Import(values)
	case params["json"] != nil:
		document, _ := params["json"].(string)
		count, rejected, err = s.store.ImportJSON(document)
	default:
		return types.Failure("settings or json parameter required")
	}
	if err != nil {
		return types.Failure(err.Error())
	}
	return types.Success(map[string]interface{}{"imported": count, "rejected": rejected})
}
