package settings

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/WebDesk/backend/internal/vfs"
)

// Setting keys.
const (
	KeyWallpaper = "desktop.wallpaper"
	KeyAccent    = "desktop.accent"
	KeyClock24   = "clock.24hr"
)

// DefaultPath is where settings persist in the virtual filesystem.
const DefaultPath = "/home/ubuntu/.config/desktop/settings.json"

// Wallpapers maps wallpaper keys to desktop CSS classes.
var Wallpapers = map[string]string{
	"a": "wallpaper-a",
	"b": "wallpaper-b",
	"c": "wallpaper-c",
	"d": "wallpaper-d",
}

// Accent is a named pair of theme colours.
type Accent struct {
	Name      string `json:"name"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// Accents lists the accent themes by key.
var Accents = map[string]Accent{
	"sunset": {Name: "Sunset", Primary: "#f98b00", Secondary: "#ff6400"},
	"ocean":  {Name: "Ocean", Primary: "#00bcd4", Secondary: "#007d91"},
	"aurora": {Name: "Aurora", Primary: "#74d680", Secondary: "#378b29"},
	"violet": {Name: "Violet", Primary: "#a077ff", Secondary: "#6933ff"},
}

// Setting describes one preference
type Setting struct {
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Default     interface{} `json:"default"`
}

// Appearance is the resolved look of the desktop.
type Appearance struct {
	Wallpaper      string `json:"wallpaper"`
	WallpaperClass string `json:"wallpaper_class"`
	AccentKey      string `json:"accent"`
	Accent         Accent `json:"accent_theme"`
	Clock24        bool   `json:"clock_24hr"`
}

// Store keeps settings in memory and optionally mirrors them into the filesystem.
type Store struct {
	mu       sync.RWMutex
	settings map[string]Setting
	fs       *vfs.FileSystem
	path     string
	logger   *zap.Logger
}

// NewStore creates a store holding the defaults.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		settings: defaults(),
		logger:   logger.Named("settings"),
	}
	return s
}

// WithFilesystem persists settings at path, loading any values already saved there.
func (s *Store) WithFilesystem(fs *vfs.FileSystem, path string) *Store {
	s.fs = fs
	s.path = path
	if !fs.FileExists(path, "/") {
		return s
	}

	content, err := fs.ReadFile(path, "/")
	if err != nil {
		s.logger.Warn("failed to read settings", zap.String("path", path), zap.Error(err))
		return s
	}
	values := make(map[string]interface{})
	if err := sonic.UnmarshalString(content, &values); err != nil {
		s.logger.Warn("failed to parse settings", zap.String("path", path), zap.Error(err))
		return s
	}
	s.mu.Lock()
	for key, value := range values {
		if err := s.setLocked(key, value); err != nil {
			s.logger.Warn("ignoring saved setting", zap.String("key", key), zap.Error(err))
		}
	}
	s.mu.Unlock()
	return s
}

func defaults() map[string]Setting {
	return map[string]Setting{
		KeyWallpaper: {Key: KeyWallpaper, Value: "a", Type: "string", Category: "background", Description: "Desktop wallpaper (a-d)", Default: "a"},
		KeyAccent:    {Key: KeyAccent, Value: "sunset", Type: "string", Category: "appearance", Description: "Accent colour theme", Default: "sunset"},
		KeyClock24:   {Key: KeyClock24, Value: false, Type: "boolean", Category: "system", Description: "Use 24-hour clock", Default: false},
	}
}

// Get returns a setting.
func (s *Store) Get(key string) (Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	setting, ok := s.settings[key]
	if !ok {
		return Setting{}, fmt.Errorf("setting not found: %s", key)
	}
	return setting, nil
}

// Set validates and stores a value, then persists.
func (s *Store) Set(key string, value interface{}) error {
	s.mu.Lock()
	err := s.setLocked(key, value)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.persist()
}

func (s *Store) setLocked(key string, value interface{}) error {
	setting, ok := s.settings[key]
	if !ok {
		return fmt.Errorf("setting not found: %s", key)
	}

	switch key {
	case KeyWallpaper:
		v, ok := value.(string)
		if _, known := Wallpapers[v]; !ok || !known {
			return fmt.Errorf("unknown wallpaper: %v", value)
		}
	case KeyAccent:
		v, ok := value.(string)
		if _, known := Accents[v]; !ok || !known {
			return fmt.Errorf("unknown accent: %v", value)
		}
	case KeyClock24:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("%s must be a boolean", key)
		}
	}

	setting.Value = value
	s.settings[key] = setting
	return nil
}

// Reset restores a setting's default.
func (s *Store) Reset(key string) (Setting, error) {
	s.mu.Lock()
	setting, ok := s.settings[key]
	if !ok {
		s.mu.Unlock()
		return Setting{}, fmt.Errorf("setting not found: %s", key)
	}
	setting.Value = setting.Default
	s.settings[key] = setting
	s.mu.Unlock()
	return setting, s.persist()
}

// List returns settings sorted by key, optionally filtered by category.
func (s *Store) List(category string) []Setting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Setting, 0, len(s.settings))
	for _, setting := range s.settings {
		if category == "" || setting.Category == category {
			out = append(out, setting)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Categories returns the distinct categories in sorted order.
func (s *Store) Categories() []string {
	seen := make(map[string]struct{})
	for _, setting := range s.List("") {
		seen[setting.Category] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Values returns key to value.
func (s *Store) Values() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]interface{}, len(s.settings))
	for key, setting := range s.settings {
		out[key] = setting.Value
	}
	return out
}

// Export renders the values as JSON.
func (s *Store) Export() (string, error) {
	data, err := sonic.ConfigStd.MarshalIndent(s.Values(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize settings: %w", err)
	}
	return string(data), nil
}

// Import applies every valid value and returns how many were applied. Invalid
// entries are reported together.
func (s *Store) Import(values map[string]interface{}) (int, []string, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	count := 0
	var rejected []string
	s.mu.Lock()
	for _, key := range keys {
		if err := s.setLocked(key, values[key]); err != nil {
			rejected = append(rejected, err.Error())
			continue
		}
		count++
	}
	s.mu.Unlock()

	return count, rejected, s.persist()
}

// ImportJSON parses a JSON document and imports it.
func (s *Store) ImportJSON(document string) (int, []string, error) {
	values := make(map[string]interface{})
	if err := sonic.UnmarshalString(document, &values); err != nil {
		return 0, nil, fmt.Errorf("JSON parse error: %w", err)
	}
	return s.Import(values)
}

// Appearance resolves the current wallpaper class and accent colours.
func (s *Store) Appearance() Appearance {
	values := s.Values()
	wallpaper, _ := values[KeyWallpaper].(string)
	accent, _ := values[KeyAccent].(string)
	clock24, _ := values[KeyClock24].(bool)
	return Appearance{
		Wallpaper:      wallpaper,
		WallpaperClass: Wallpapers[wallpaper],
		AccentKey:      accent,
		Accent:         Accents[accent],
		Clock24:        clock24,
	}
}

// FormatClock renders t the way the top panel shows it.
func (s *Store) FormatClock(t time.Time) string {
	if s.Appearance().Clock24 {
		return t.Format("Mon, Jan 2, 15:04")
	}
	return t.Format("Mon, Jan 2, 3:04 PM")
}

func (s *Store) persist() error {
	if s.fs == nil {
		return nil
	}
	document, err := s.Export()
	if err != nil {
		return err
	}
	if _, err := s.fs.WriteFile(s.path, "/", document); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}
	return nil
}
