package types

// Category groups services in discovery listings
type Category string

const (
	CategoryFilesystem Category = "filesystem"
	CategoryTerminal   Category = "terminal"
	CategoryDesktop    Category = "desktop"
	CategoryBrowser    Category = "browser"
	CategorySettings   Category = "settings"
	CategoryAuth       Category = "auth"
	CategorySystem     Category = "system"
)

// ValidCategory reports whether c is a known category
func ValidCategory(c Category) bool {
	switch c {
	case CategoryFilesystem, CategoryTerminal, CategoryDesktop, CategoryBrowser,
		CategorySettings, CategoryAuth, CategorySystem:
		return true
	}
	return false
}

// Service represents a service definition
type Service struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Category     Category    `json:"category"`
	Capabilities []string    `json:"capabilities"`
	Tools        []Tool      `json:"tools"`
	DataModels   []DataModel `json:"data_models,omitempty"`
}

// Tool represents a service tool
type Tool struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  []Parameter `json:"parameters"`
	Returns     string      `json:"returns"`
}

// Parameter represents a tool parameter
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// DataModel describes a structure returned by a service
type DataModel struct {
	Name   string            `json:"name"`
	Fields map[string]string `json:"fields"`
}

// Context identifies the desktop surface that issued a call
type Context struct {
	WindowID  *string `json:"window_id,omitempty"`
	SessionID *string `json:"session_id,omitempty"`
	UserID    *string `json:"user_id,omitempty"`
}

// Result represents a service execution result
type Result struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *string                `json:"error,omitempty"`
}

// Success wraps data in a successful result
func Success(data map[string]interface{}) (*Result, error) {
	return &Result{Success: true, Data: data}, nil
}

// Failure wraps a user-facing message in a failed result
func Failure(message string) (*Result, error) {
	return &Result{Success: false, Error: &message}, nil
}
